package ingest_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/wikicrawl/internal/database"
	"github.com/jonesrussell/wikicrawl/internal/domain"
	"github.com/jonesrussell/wikicrawl/internal/ingest"
	"github.com/jonesrussell/wikicrawl/internal/logger"
	"github.com/jonesrussell/wikicrawl/internal/wiki"
)

type fakeArticleRepo struct {
	created []*domain.Article
	byURL   map[string]*domain.Article
}

func newFakeArticleRepo() *fakeArticleRepo {
	return &fakeArticleRepo{byURL: make(map[string]*domain.Article)}
}

func (r *fakeArticleRepo) Create(_ context.Context, article *domain.Article) error {
	article.ID = fmt.Sprintf("article-%d", len(r.created)+1)
	r.created = append(r.created, article)
	r.byURL[article.URL] = article
	return nil
}

func (r *fakeArticleRepo) GetByURL(_ context.Context, url string) (*domain.Article, error) {
	article, ok := r.byURL[url]
	if !ok {
		return nil, database.ErrArticleNotFound
	}
	return article, nil
}

func (r *fakeArticleRepo) ExistsByURL(_ context.Context, url string) (bool, error) {
	_, ok := r.byURL[url]
	return ok, nil
}

func (r *fakeArticleRepo) ListByParent(_ context.Context, parentID string) ([]*domain.Article, error) {
	var children []*domain.Article
	for _, article := range r.created {
		if article.ParentID != nil && *article.ParentID == parentID {
			children = append(children, article)
		}
	}
	return children, nil
}

type fakeSummaryRepo struct {
	created     []*domain.Summary
	byArticleID map[string]*domain.Summary
}

func newFakeSummaryRepo() *fakeSummaryRepo {
	return &fakeSummaryRepo{byArticleID: make(map[string]*domain.Summary)}
}

func (r *fakeSummaryRepo) Create(_ context.Context, summary *domain.Summary) error {
	summary.ID = fmt.Sprintf("summary-%d", len(r.created)+1)
	r.created = append(r.created, summary)
	r.byArticleID[summary.ArticleID] = summary
	return nil
}

func (r *fakeSummaryRepo) GetByArticleID(_ context.Context, articleID string) (*domain.Summary, error) {
	summary, ok := r.byArticleID[articleID]
	if !ok {
		return nil, database.ErrSummaryNotFound
	}
	return summary, nil
}

type fakeCrawler struct {
	tree  *wiki.Node
	err   error
	calls int
}

func (c *fakeCrawler) Crawl(_ context.Context, _ string) (*wiki.Node, error) {
	c.calls++
	return c.tree, c.err
}

type fakeSummarizer struct {
	digest string
	err    error
}

func (s *fakeSummarizer) Summarize(_ context.Context, _ string) (string, error) {
	return s.digest, s.err
}

func sampleTree() *wiki.Node {
	return &wiki.Node{
		URL:   "https://example.org/wiki/A",
		Title: "A",
		Body:  "About A.",
		Depth: 0,
		Children: []*wiki.Node{
			{
				URL:   "https://example.org/wiki/B",
				Title: "B",
				Body:  "About B.",
				Depth: 1,
				Children: []*wiki.Node{
					{URL: "https://example.org/wiki/D", Title: "D", Body: "About D.", Depth: 2},
				},
			},
			{URL: "https://example.org/wiki/C", Title: "C", Body: "About C.", Depth: 1},
		},
	}
}

func TestParsePersistsTreePreOrder(t *testing.T) {
	t.Parallel()

	articles := newFakeArticleRepo()
	summaries := newFakeSummaryRepo()
	crawler := &fakeCrawler{tree: sampleTree()}

	service := ingest.NewService(articles, summaries, crawler, &fakeSummarizer{digest: "Digest of A."},
		"mistral-tiny", logger.NewNoOp())

	root, err := service.Parse(context.Background(), "https://example.org/wiki/A")
	require.NoError(t, err)

	require.Len(t, articles.created, 4)

	// Pre-order: A, B, D, C.
	assert.Equal(t, "A", articles.created[0].Title)
	assert.Equal(t, "B", articles.created[1].Title)
	assert.Equal(t, "D", articles.created[2].Title)
	assert.Equal(t, "C", articles.created[3].Title)

	// Root has no parent; children point at their parent's record.
	assert.Nil(t, articles.created[0].ParentID)
	require.NotNil(t, articles.created[1].ParentID)
	assert.Equal(t, root.ID, *articles.created[1].ParentID)
	require.NotNil(t, articles.created[2].ParentID)
	assert.Equal(t, articles.created[1].ID, *articles.created[2].ParentID)
	require.NotNil(t, articles.created[3].ParentID)
	assert.Equal(t, root.ID, *articles.created[3].ParentID)

	assert.Equal(t, 2, articles.created[2].Depth)

	// The root digest was persisted.
	require.Len(t, summaries.created, 1)
	assert.Equal(t, root.ID, summaries.created[0].ArticleID)
	assert.Equal(t, "Digest of A.", summaries.created[0].Body)
	assert.Equal(t, "mistral-tiny", summaries.created[0].Model)
}

func TestParseDuplicateSeed(t *testing.T) {
	t.Parallel()

	articles := newFakeArticleRepo()
	existing := &domain.Article{URL: "https://example.org/wiki/A", Title: "A"}
	require.NoError(t, articles.Create(context.Background(), existing))

	crawler := &fakeCrawler{tree: sampleTree()}
	service := ingest.NewService(articles, newFakeSummaryRepo(), crawler, nil, "mistral-tiny", logger.NewNoOp())

	_, err := service.Parse(context.Background(), "https://example.org/wiki/A")
	require.ErrorIs(t, err, ingest.ErrAlreadyExists)
	assert.Zero(t, crawler.calls, "no crawl is launched for a known seed")
}

func TestParseCrawlFailure(t *testing.T) {
	t.Parallel()

	crawler := &fakeCrawler{err: wiki.ErrNoResult}
	service := ingest.NewService(newFakeArticleRepo(), newFakeSummaryRepo(), crawler, nil,
		"mistral-tiny", logger.NewNoOp())

	_, err := service.Parse(context.Background(), "https://example.org/wiki/A")
	require.ErrorIs(t, err, wiki.ErrNoResult)
}

func TestParseToleratesSummarizerFailure(t *testing.T) {
	t.Parallel()

	articles := newFakeArticleRepo()
	summaries := newFakeSummaryRepo()
	crawler := &fakeCrawler{tree: sampleTree()}

	service := ingest.NewService(articles, summaries, crawler,
		&fakeSummarizer{err: errors.New("api unavailable")}, "mistral-tiny", logger.NewNoOp())

	root, err := service.Parse(context.Background(), "https://example.org/wiki/A")
	require.NoError(t, err, "a failed digest does not invalidate the crawl")

	assert.Len(t, articles.created, 4)
	assert.Empty(t, summaries.created)
	assert.NotEmpty(t, root.ID)
}

func TestParseWithoutSummarizer(t *testing.T) {
	t.Parallel()

	articles := newFakeArticleRepo()
	summaries := newFakeSummaryRepo()
	crawler := &fakeCrawler{tree: sampleTree()}

	service := ingest.NewService(articles, summaries, crawler, nil, "mistral-tiny", logger.NewNoOp())

	_, err := service.Parse(context.Background(), "https://example.org/wiki/A")
	require.NoError(t, err)
	assert.Empty(t, summaries.created)
}

func TestGetSummary(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	articles := newFakeArticleRepo()
	summaries := newFakeSummaryRepo()

	article := &domain.Article{URL: "https://example.org/wiki/A", Title: "A"}
	require.NoError(t, articles.Create(ctx, article))
	require.NoError(t, summaries.Create(ctx, &domain.Summary{ArticleID: article.ID, Body: "Digest.", Model: "mistral-tiny"}))

	service := ingest.NewService(articles, summaries, &fakeCrawler{}, nil, "mistral-tiny", logger.NewNoOp())

	summary, err := service.GetSummary(ctx, "https://example.org/wiki/A")
	require.NoError(t, err)
	assert.Equal(t, "Digest.", summary.Body)

	_, err = service.GetSummary(ctx, "https://example.org/wiki/Unknown")
	assert.ErrorIs(t, err, database.ErrArticleNotFound)

	noDigest := &domain.Article{URL: "https://example.org/wiki/B", Title: "B"}
	require.NoError(t, articles.Create(ctx, noDigest))

	_, err = service.GetSummary(ctx, "https://example.org/wiki/B")
	assert.ErrorIs(t, err, database.ErrSummaryNotFound)
}
