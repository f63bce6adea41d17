// Package pipeline runs the escalating role-discovery chain for one
// subject: primary metadata credits gated by cross-validation, then an
// expanded encyclopedia scrape with per-role verification, then the
// hail-mary web recovery, and finally generic placeholders. Discover
// never errors and never returns an empty role list.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"rolescout/internal/cache"
	"rolescout/internal/discovery"
	"rolescout/internal/franchise"
	"rolescout/internal/knownfor"
	"rolescout/internal/llm"
	"rolescout/internal/model"
	"rolescout/internal/redflag"
	"rolescout/internal/search"
	"rolescout/internal/textnorm"
	"rolescout/internal/tmdb"
	"rolescout/internal/util"
	"rolescout/internal/verify"
	"rolescout/internal/wiki"
	"rolescout/internal/worker"
)

// primarySource is the structured metadata provider boundary
type primarySource interface {
	FetchPrimary(ctx context.Context, subject string, knownFor []string, maxResults int) ([]model.CandidateRole, error)
}

// articleSource is the encyclopedia/community boundary
type articleSource interface {
	FetchArticleText(ctx context.Context, subject string) (string, error)
	FetchStructuredSections(ctx context.Context, subject string) (*wiki.Sections, error)
	FetchFandomTitles(ctx context.Context, subject string) ([]string, error)
}

// roleVerifier is one run's verification engine
type roleVerifier interface {
	VerifyBatch(ctx context.Context, subject string, roles []model.CandidateRole) []model.CandidateRole
	Cost() int
}

// Pipeline wires the discovery components. Construct once, use for many
// runs; per-run state (cost meter, pools) lives inside Discover.
type Pipeline struct {
	primary     primarySource
	articles    articleSource
	extractor   *knownfor.Extractor
	searcher    search.Provider
	newVerifier func() roleVerifier
	config      *model.Config
	verbose     bool
}

// NewPipeline creates a pipeline from configuration. Missing credentials
// disable the corresponding source rather than failing: the escalation
// chain is built to survive absent collaborators.
func NewPipeline(cfg *model.Config) (*Pipeline, error) {
	var responseCache cache.Cache
	if cfg.Cache.Enabled {
		if cfg.Cache.Dir != "" {
			responseCache = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
		} else {
			responseCache = cache.NewMemoryCache(cfg.Cache.MemoryTTL, 10*time.Minute)
		}
	}

	var primary primarySource
	if cfg.TMDB.APIKey != "" {
		client, err := tmdb.New(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, cfg.TMDB.Language)
		if err != nil {
			return nil, fmt.Errorf("tmdb client: %w", err)
		}
		primary = discovery.New(client, int64(cfg.TMDB.MinVoteCount))
	}

	robots := util.NewRobotsChecker(cfg.HTTP.UserAgent, cfg.HTTP.Timeout)
	limiter := worker.NewLimiter(1, 2)
	wikiOpts := []wiki.Option{
		wiki.WithRobots(robots),
		wiki.WithLimiter(limiter),
		wiki.WithProxy(cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy, cfg.HTTP.NoProxy),
	}
	if responseCache != nil {
		wikiOpts = append(wikiOpts, wiki.WithCache(responseCache, cfg.Cache.DiskTTL))
	}
	articles := wiki.NewClient(cfg.HTTP.Timeout, cfg.HTTP.UserAgent, cfg.HTTP.MaxBodyBytes, wikiOpts...)

	searcher, err := search.NewProvider(cfg.Search.Provider, cfg.Search.APIKey, cfg.HTTP.UserAgent)
	if err != nil {
		return nil, fmt.Errorf("search provider: %w", err)
	}
	if searcher != nil && responseCache != nil {
		searcher = search.NewCachedProvider(searcher, responseCache, cfg.Cache.MemoryTTL)
	}

	judge, err := llm.NewJudge(llm.ConfigFromModel(cfg.LLM, cfg.HTTP))
	if err != nil {
		// A broken judge config degrades to search-only verification
		fmt.Fprintf(os.Stderr, "Warning: LLM judge disabled: %v\n", err)
		judge, _ = llm.NewJudge(llm.Config{})
	}

	authority := verify.NewAuthorityClassifier(&cfg.Authority)

	p := &Pipeline{
		primary:   primary,
		articles:  articles,
		extractor: knownfor.NewExtractor(),
		searcher:  searcher,
		config:    cfg,
		verbose:   cfg.Output.Verbose,
	}
	p.newVerifier = func() roleVerifier {
		return verify.New(searcher, judge, authority, &verify.CostMeter{}, cfg)
	}

	return p, nil
}

// Discover runs the full escalation chain for one subject. It always
// returns a usable result; every internal failure converts into absent
// evidence and a lower tier.
func (p *Pipeline) Discover(ctx context.Context, subject string) *model.RunResult {
	started := time.Now().UTC()
	verifier := p.newVerifier()

	result := &model.RunResult{
		Subject:   subject,
		StartedAt: started,
	}

	articleText := p.fetchArticleText(ctx, subject)
	knownFor := p.extractor.Extract(articleText)
	p.logf("known-for titles: %v", knownFor)

	// Tier 1: primary source, gated by cross-validation
	pool := p.fetchPrimary(ctx, subject, knownFor)
	stats := poolStats{
		size:           len(pool),
		crossValidated: discovery.CrossValidate(pool, knownFor),
	}

	if nextAction(statePrimary, stats, verifyStats{}, p.config.Verify.MinVerifiedRoles) == actionAcceptPrimary {
		result.Roles = franchise.Deduplicate(pool)
		result.Tier = model.TierPrimary
		result.CostUnits = float64(verifier.Cost())
		result.Duration = time.Since(started)
		return result
	}
	if len(pool) > 0 {
		p.logf("primary pool rejected by cross-validation, escalating")
	}

	// Tier 2: expanded scrape plus verification
	candidates := p.buildEscalatedPool(ctx, subject, articleText, knownFor)
	if len(candidates) > p.config.Verify.MaxTitles {
		candidates = candidates[:p.config.Verify.MaxTitles]
	}

	checked := verifier.VerifyBatch(ctx, subject, candidates)
	confirmed, rejected := splitByValidity(checked)

	report := redflag.Detect(confirmed, rejected)
	result.RedFlags = &report
	if report.HasRedFlags {
		p.logf("red flags: %d (emergency=%v)", len(report.Flags), report.TriggerEmergency)
	}

	vs := verifyStats{
		confirmed: len(confirmed),
		attempted: len(checked),
		emergency: report.TriggerEmergency,
	}

	if nextAction(stateVerified, stats, vs, p.config.Verify.MinVerifiedRoles) == actionHailMary {
		// Tier 3: broad web recovery, leniently verified
		recovered := p.runHailMary(ctx, subject)
		p.logf("hail-mary candidates: %d", len(recovered))
		recoveredChecked := verifier.VerifyBatch(ctx, subject, recovered)
		recoveredConfirmed, _ := splitByValidity(recoveredChecked)

		confirmed = append(confirmed, recoveredConfirmed...)
		if len(confirmed) > p.config.Verify.MaxConfirmedRoles {
			confirmed = confirmed[:p.config.Verify.MaxConfirmedRoles]
		}
		vs.hailMaryDone = true
		vs.confirmed = len(confirmed)
		result.Tier = model.TierHailMary
	} else {
		result.Tier = model.TierEscalated
	}

	if nextAction(stateVerified, stats, vs, p.config.Verify.MinVerifiedRoles) == actionGenericFallback {
		result.Roles = genericRoles(subject)
		result.Tier = model.TierGenericFallback
	} else {
		result.Roles = franchise.Deduplicate(confirmed)
		if len(result.Roles) == 0 {
			result.Roles = genericRoles(subject)
			result.Tier = model.TierGenericFallback
		}
	}

	result.CostUnits = float64(verifier.Cost())
	result.Duration = time.Since(started)
	return result
}

// fetchArticleText tolerates a missing or failing encyclopedia source
func (p *Pipeline) fetchArticleText(ctx context.Context, subject string) string {
	if p.articles == nil {
		return ""
	}
	text, err := p.articles.FetchArticleText(ctx, subject)
	if err != nil {
		p.logf("article text unavailable: %v", err)
		return ""
	}
	return text
}

// fetchPrimary tolerates an absent or failing metadata provider
func (p *Pipeline) fetchPrimary(ctx context.Context, subject string, knownFor []string) []model.CandidateRole {
	if p.primary == nil {
		return nil
	}
	pool, err := p.primary.FetchPrimary(ctx, subject, knownFor, p.config.TMDB.MaxResults)
	if err != nil {
		p.logf("primary source unavailable: %v", err)
		return nil
	}
	return pool
}

// buildEscalatedPool unions the known-for titles, the expanded
// encyclopedia scrape, and, for subjects with voice-acting indicators,
// the specialty community source. Everything passes the validity filter
// before spending verification budget.
func (p *Pipeline) buildEscalatedPool(ctx context.Context, subject, articleText string, knownFor []string) []model.CandidateRole {
	var pool []model.CandidateRole
	seen := make(map[string]bool)

	add := func(rawTitle string, source model.SourceTag, isKnownFor bool) {
		title := textnorm.CleanTitle(rawTitle)
		if !textnorm.ValidTitle(title) {
			return
		}
		key := textnorm.Normalize(title)
		if seen[key] {
			return
		}
		seen[key] = true
		pool = append(pool, model.CandidateRole{
			Title:    title,
			Medium:   model.MediumUnknown,
			Source:   source,
			KnownFor: isKnownFor,
		})
	}

	for _, title := range knownFor {
		add(title, model.SourceKnownFor, true)
	}

	if p.articles != nil {
		sections, err := p.articles.FetchStructuredSections(ctx, subject)
		if err != nil {
			p.logf("expanded scrape unavailable: %v", err)
		} else if sections != nil {
			for _, title := range sections.Titles {
				add(title, model.SourceEncyclopediaExpanded, false)
			}
		}

		if knownfor.HasVoiceIndicators(articleText) {
			titles, err := p.articles.FetchFandomTitles(ctx, subject)
			if err != nil {
				p.logf("specialty source unavailable: %v", err)
			}
			for _, title := range titles {
				add(title, model.SourceSpecialtyCommunity, false)
			}
		}
	}

	return pool
}

// splitByValidity partitions verified roles. Rejected roles are kept for
// red-flag analysis, never for output.
func splitByValidity(roles []model.CandidateRole) (confirmed, rejected []model.CandidateRole) {
	for _, role := range roles {
		if role.Verification != nil && !role.Verification.IsValid {
			rejected = append(rejected, role)
			continue
		}
		confirmed = append(confirmed, role)
	}
	return confirmed, rejected
}

// genericRoles is the terminal always-succeeds fallback
func genericRoles(subject string) []model.CandidateRole {
	var roles []model.CandidateRole
	for _, label := range []string{"Professional Photos", "Red Carpet", "Portrait"} {
		roles = append(roles, model.CandidateRole{
			Title:  fmt.Sprintf("%s - %s", subject, label),
			Medium: model.MediumUnknown,
			Source: model.SourceEmergencyRecovery,
		})
	}
	return roles
}

// sleep waits for d unless the context ends first
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}

func (p *Pipeline) logf(format string, args ...any) {
	if p.verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
