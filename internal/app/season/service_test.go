package season

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/preston-bernstein/cfp-rankings-service/internal/config"
	domainseason "github.com/preston-bernstein/cfp-rankings-service/internal/domain/season"
	"github.com/preston-bernstein/cfp-rankings-service/internal/metrics"
	"github.com/preston-bernstein/cfp-rankings-service/internal/providers"
	"github.com/preston-bernstein/cfp-rankings-service/internal/store"
	"github.com/preston-bernstein/cfp-rankings-service/internal/teststubs"
	"github.com/preston-bernstein/cfp-rankings-service/internal/testutil"
)

func testSite(names ...string) config.Site {
	site := config.Site{Title: "test"}
	for _, n := range names {
		site.Sources = append(site.Sources, config.Source{Name: n, Path: n + ".json"})
	}
	return site
}

func rankedDoc(week string, teams ...string) providers.RawDocument {
	rankings := make([]any, 0, len(teams))
	for i, team := range teams {
		rankings = append(rankings, map[string]any{"seed": float64(i + 1), "team": team})
	}
	return providers.RawDocument{"week": week, "rankings": rankings}
}

func TestRefreshCommitsNormalizedDocument(t *testing.T) {
	provider := testutil.GoodProvider{Doc: testutil.RawDocument(t, testutil.SeasonFixture)}
	logger, buf := testutil.NewBufferLogger()
	svc := NewService(store.NewDocumentStore(), provider, testSite("cfp"), logger, metrics.NewRecorder())
	fixed := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	svc.now = testutil.NowAt(fixed)

	outcome, err := svc.Refresh(context.Background(), "cfp")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !outcome.Applied || outcome.Seq != 1 || outcome.Rankings != 13 {
		t.Fatalf("unexpected outcome %+v", outcome)
	}

	doc, ok := svc.Document("cfp")
	if !ok || doc.Meta.Shape != domainseason.ShapeSeason {
		t.Fatalf("expected committed season document, got %+v ok=%v", doc.Meta, ok)
	}
	cur, _ := svc.Current("cfp")
	if !cur.FetchedAt.Equal(fixed) {
		t.Fatalf("expected fetched at %v, got %v", fixed, cur.FetchedAt)
	}
	if !strings.Contains(buf.String(), "refresh committed") {
		t.Fatalf("expected commit log, got %s", buf.String())
	}
}

func TestRefreshUnknownSource(t *testing.T) {
	svc := NewService(store.NewDocumentStore(), testutil.GoodProvider{}, testSite("cfp"), nil, nil)
	if _, err := svc.Refresh(context.Background(), "nope"); !errors.Is(err, ErrUnknownSource) {
		t.Fatalf("expected ErrUnknownSource, got %v", err)
	}
}

func TestRefreshFailureReplacesDocument(t *testing.T) {
	boom := &providers.LoadError{Source: "cfp", StatusCode: 503}
	provider := &teststubs.StubProvider{Responses: []teststubs.Response{
		{Doc: rankedDoc("14", "Ohio State")},
		{Err: boom},
	}}
	svc := NewService(store.NewDocumentStore(), provider, testSite("cfp"), nil, nil)

	if _, err := svc.Refresh(context.Background(), "cfp"); err != nil {
		t.Fatalf("first refresh: %v", err)
	}
	outcome, err := svc.Refresh(context.Background(), "cfp")
	if !errors.Is(err, boom) {
		t.Fatalf("expected load error, got %v", err)
	}
	if !outcome.Applied || outcome.Error == "" {
		t.Fatalf("expected failure committed, got %+v", outcome)
	}
	if _, ok := svc.Document("cfp"); ok {
		t.Fatalf("expected no document after failed refresh")
	}
	cur, ok := svc.Current("cfp")
	if !ok || !cur.Failed() {
		t.Fatalf("expected failed result committed, got %+v", cur)
	}
}

// Two overlapping refreshes where the first resolves last: the second must win.
func TestRefreshOutOfOrderCompletionKeepsLatest(t *testing.T) {
	release := make(chan struct{})
	provider := &teststubs.StubProvider{
		Responses: []teststubs.Response{
			{Doc: rankedDoc("old", "Georgia"), Wait: release},
			{Doc: rankedDoc("new", "Indiana")},
		},
		Started: make(chan int, 2),
	}
	recorder := metrics.NewRecorder()
	svc := NewService(store.NewDocumentStore(), provider, testSite("cfp"), nil, recorder)

	slow := make(chan Outcome, 1)
	go func() {
		outcome, _ := svc.Refresh(context.Background(), "cfp")
		slow <- outcome
	}()
	<-provider.Started

	fast, err := svc.Refresh(context.Background(), "cfp")
	if err != nil || !fast.Applied {
		t.Fatalf("expected second refresh to commit, got %+v err %v", fast, err)
	}
	<-provider.Started
	close(release)

	first := <-slow
	if first.Applied {
		t.Fatalf("expected first refresh discarded, got %+v", first)
	}
	doc, _ := svc.Document("cfp")
	if doc.Meta.Week != "new" || doc.Rankings[0].Team != "Indiana" {
		t.Fatalf("expected latest document kept, got %+v", doc.Meta)
	}
	if recorder.StaleDiscards("cfp") != 1 {
		t.Fatalf("expected one stale discard recorded, got %d", recorder.StaleDiscards("cfp"))
	}
}

func TestRefreshCancelledKeepsCommittedDocument(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	provider := &teststubs.StubProvider{
		Responses: []teststubs.Response{
			{Doc: rankedDoc("14", "Ohio State")},
			{Doc: rankedDoc("15", "Indiana"), Wait: release},
		},
		Started: make(chan int, 2),
	}
	svc := NewService(store.NewDocumentStore(), provider, testSite("cfp"), nil, nil)

	if _, err := svc.Refresh(context.Background(), "cfp"); err != nil {
		t.Fatalf("first refresh: %v", err)
	}
	<-provider.Started

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		outcome, err := svc.Refresh(ctx, "cfp")
		if outcome.Applied {
			err = errors.New("cancelled refresh applied")
		}
		done <- err
	}()
	<-provider.Started
	cancel()

	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	doc, ok := svc.Document("cfp")
	if !ok || doc.Meta.Week != "14" {
		t.Fatalf("expected earlier document still served, got %+v ok=%v", doc.Meta, ok)
	}
}

func TestRefreshWithCancelledContextDoesNotCommit(t *testing.T) {
	svc := NewService(store.NewDocumentStore(), testutil.GoodProvider{Doc: rankedDoc("14", "A")}, testSite("cfp"), nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.Refresh(ctx, "cfp"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if _, ok := svc.Current("cfp"); ok {
		t.Fatalf("expected nothing committed for a cancelled refresh")
	}
}

func TestRefreshAllFansOutAndJoinsErrors(t *testing.T) {
	boom := errors.New("boom")
	provider := &sourceProvider{
		docs: map[string]providers.RawDocument{"a": rankedDoc("1", "A"), "c": rankedDoc("1", "C", "D")},
		errs: map[string]error{"b": boom},
	}
	svc := NewService(store.NewDocumentStore(), provider, testSite("a", "b", "c"), nil, nil)

	outcomes, err := svc.RefreshAll(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected joined error to include boom, got %v", err)
	}
	if len(outcomes) != 3 {
		t.Fatalf("expected 3 outcomes, got %d", len(outcomes))
	}
	if outcomes[0].Source != "a" || outcomes[1].Error == "" || outcomes[2].Rankings != 2 {
		t.Fatalf("unexpected outcomes %+v", outcomes)
	}
	if _, ok := svc.Document("a"); !ok {
		t.Fatalf("expected a committed despite b failing")
	}
	if _, ok := svc.Document("c"); !ok {
		t.Fatalf("expected c committed despite b failing")
	}
}

func TestRefreshAppliesBracketOverride(t *testing.T) {
	site := testSite("cfp")
	site.Bracket = &config.BracketConfig{FirstRound: []config.Pairing{{High: 3, Low: 6}, {High: 4, Low: 5}}, Byes: []int{2, 1}}
	svc := NewService(store.NewDocumentStore(), testutil.GoodProvider{Doc: rankedDoc("1", "A")}, site, nil, nil)

	if _, err := svc.Refresh(context.Background(), "cfp"); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	doc, _ := svc.Document("cfp")
	want := domainseason.Bracket{FirstRound: []domainseason.Pairing{{High: 3, Low: 6}, {High: 4, Low: 5}}, Byes: []int{2, 1}}
	if len(doc.Bracket.FirstRound) != 2 || doc.Bracket.FirstRound[0] != want.FirstRound[0] || doc.Bracket.Byes[1] != 1 {
		t.Fatalf("expected override bracket, got %+v", doc.Bracket)
	}
}

func TestSourcesReturnsCopy(t *testing.T) {
	svc := NewService(store.NewDocumentStore(), testutil.GoodProvider{}, testSite("a", "b"), nil, nil)
	srcs := svc.Sources()
	srcs[0].Name = "mutated"
	if got, ok := svc.Source("a"); !ok || got.Name != "a" {
		t.Fatalf("expected internal sources untouched")
	}
}

type sourceProvider struct {
	docs map[string]providers.RawDocument
	errs map[string]error
}

func (p *sourceProvider) FetchDocument(ctx context.Context, source config.Source) (providers.RawDocument, error) {
	_ = ctx
	if err := p.errs[source.Name]; err != nil {
		return nil, err
	}
	return p.docs[source.Name], nil
}
