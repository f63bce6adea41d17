package verify

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"rolescout/internal/llm"
	"rolescout/internal/model"
	"rolescout/internal/search"
	"rolescout/internal/textnorm"
	"rolescout/internal/worker"
)

// Verifier establishes a confidence level and validity decision for
// candidate roles: web-search evidence first, a language-model judgment
// as fallback, and a permissive default when neither is available.
type Verifier struct {
	search     search.Provider
	judge      *llm.Judge
	authority  *AuthorityClassifier
	meter      *CostMeter
	maxResults int
	queryDelay time.Duration
	batchSize  int
	batchDelay time.Duration
	workers    int
}

// New creates a verifier for one pipeline run. provider and judge may be
// nil/disabled; the verifier degrades through its strategy chain.
func New(provider search.Provider, judge *llm.Judge, authority *AuthorityClassifier, meter *CostMeter, cfg *model.Config) *Verifier {
	if authority == nil {
		authority = NewAuthorityClassifier(&cfg.Authority)
	}
	if meter == nil {
		meter = &CostMeter{}
	}

	workers := cfg.Concurrency.VerifyWorkers
	if workers <= 0 {
		workers = 1
	}

	return &Verifier{
		search:     provider,
		judge:      judge,
		authority:  authority,
		meter:      meter,
		maxResults: cfg.Search.MaxResults,
		queryDelay: cfg.Search.QueryDelay,
		batchSize:  cfg.Verify.BatchSize,
		batchDelay: cfg.Verify.BatchDelay,
		workers:    workers,
	}
}

// Cost returns the spend accumulated so far
func (v *Verifier) Cost() int {
	return v.meter.Total()
}

// Verify establishes a VerificationResult for one role. Roles sourced
// from emergency recovery get the lenient treatment: the strict bar has
// already failed for this subject, so zero results count as weak support
// rather than rejection.
func (v *Verifier) Verify(ctx context.Context, subject string, role model.CandidateRole) model.VerificationResult {
	lenient := role.Source == model.SourceEmergencyRecovery

	fallback := model.VerificationResult{
		IsValid:    true,
		Confidence: model.ConfidenceUnknown,
		Reason:     "no verification available",
		Method:     model.MethodNone,
	}

	if v.search != nil {
		result, conclusive := v.verifyViaSearch(ctx, subject, role, lenient)
		if conclusive {
			return result
		}
		if result.Reason != "" {
			fallback = result
		}
	}

	if v.judge.IsEnabled() {
		if result, ok := v.verifyViaJudge(ctx, subject, role); ok {
			return result
		}
	}

	return fallback
}

// verifyViaSearch runs the targeted queries and applies the decision
// table. conclusive=false means search was unavailable or the evidence
// was inconclusive; the caller falls through to the model judgment.
func (v *Verifier) verifyViaSearch(ctx context.Context, subject string, role model.CandidateRole, lenient bool) (model.VerificationResult, bool) {
	queries := buildQueries(subject, role)

	var results []search.Result
	searched := false
	for i, query := range queries {
		if i > 0 && !sleep(ctx, v.queryDelay) {
			break
		}
		v.meter.Add(CostSearchQuery)
		batch, err := v.search.Search(ctx, query, v.maxResults)
		if err != nil {
			continue
		}
		searched = true
		results = append(results, batch...)
	}

	if !searched {
		return model.VerificationResult{}, false
	}

	if len(results) == 0 {
		if lenient {
			return model.VerificationResult{
				IsValid:    true,
				Confidence: model.ConfidenceLow,
				Reason:     "no search results, accepted during recovery",
				Method:     model.MethodWebSearch,
			}, true
		}
		return model.VerificationResult{
			IsValid:    false,
			Confidence: model.ConfidenceMedium,
			Reason:     model.ReasonNoResults,
			Method:     model.MethodWebSearch,
		}, true
	}

	ev := analyzeEvidence(subject, role, results, v.authority, lenient)

	switch {
	case ev.negative && ev.negativeAuthoritative:
		return model.VerificationResult{
			IsValid:    false,
			Confidence: model.ConfidenceHigh,
			Reason:     fmt.Sprintf("role attributed to %s", ev.otherActor),
			Method:     model.MethodWebSearch,
		}, true
	case ev.positive && ev.positiveAuthoritative:
		return model.VerificationResult{
			IsValid:    true,
			Confidence: model.ConfidenceHigh,
			Reason:     "confirmed by authoritative source",
			Method:     model.MethodWebSearch,
		}, true
	case ev.positive:
		return model.VerificationResult{
			IsValid:    true,
			Confidence: model.ConfidenceMedium,
			Reason:     "supported by search results",
			Method:     model.MethodWebSearch,
		}, true
	case !lenient && role.HasCharacter() && ev.subjectTitleCooccur && ev.characterHits == 0:
		return model.VerificationResult{
			IsValid:    false,
			Confidence: model.ConfidenceMedium,
			Reason:     model.ReasonCharacterMismatch,
			Method:     model.MethodWebSearch,
		}, true
	}

	return model.VerificationResult{
		IsValid:    true,
		Confidence: model.ConfidenceUnknown,
		Reason:     "inconclusive search evidence",
		Method:     model.MethodWebSearch,
	}, false
}

// verifyViaJudge asks the language model. ok=false means the call failed
// and the permissive default applies.
func (v *Verifier) verifyViaJudge(ctx context.Context, subject string, role model.CandidateRole) (model.VerificationResult, bool) {
	v.meter.Add(CostLLMJudgment)
	verdict, err := v.judge.JudgeRole(ctx, subject, role.Character, role.Title)
	if err != nil {
		return model.VerificationResult{}, false
	}

	return model.VerificationResult{
		IsValid:    verdict.Valid,
		Confidence: verdict.Confidence,
		Reason:     verdict.Reason,
		Method:     model.MethodLLM,
	}, true
}

// buildQueries produces the targeted query set for one role: identity
// plus title on a film database, identity plus character, and a
// biographical phrasing variant.
func buildQueries(subject string, role model.CandidateRole) []string {
	queries := []string{
		fmt.Sprintf("%q %q site:imdb.com", subject, role.Title),
	}
	if role.HasCharacter() {
		queries = append(queries,
			fmt.Sprintf("%q %q", subject, role.Character),
			fmt.Sprintf("%s played %s in %s", subject, role.Character, role.Title),
		)
	} else {
		queries = append(queries, fmt.Sprintf("%s starred in %s", subject, role.Title))
	}
	return queries
}

// evidence summarizes the co-occurrence patterns over all results
type evidence struct {
	positive              bool
	positiveAuthoritative bool
	negative              bool
	negativeAuthoritative bool
	subjectTitleCooccur   bool
	characterHits         int
	otherActor            string
}

var attributionRe = regexp.MustCompile(`(?i)\b(?:played|portrayed|voiced)\s+by\s+([A-Z][\w.'-]*(?:\s+[A-Z][\w.'-]*)+)`)

// analyzeEvidence scans result titles and snippets for positive and
// negative casting patterns. Lenient mode counts any subject/title
// co-occurrence as positive; strict mode wants the character named.
func analyzeEvidence(subject string, role model.CandidateRole, results []search.Result, authority *AuthorityClassifier, lenient bool) evidence {
	var ev evidence

	normSubject := textnorm.Normalize(subject)
	normCharacter := textnorm.Normalize(role.Character)
	normTitle := textnorm.Normalize(role.Title)

	for _, result := range results {
		raw := result.Title + " " + result.Snippet
		text := textnorm.Normalize(raw)

		subjectHit := strings.Contains(text, normSubject)
		titleHit := normTitle != "" && strings.Contains(text, normTitle)
		characterHit := role.HasCharacter() && strings.Contains(text, normCharacter)

		if characterHit {
			ev.characterHits++
		}
		if subjectHit && titleHit {
			ev.subjectTitleCooccur = true
		}

		authoritative := authority.IsAuthoritative(result.Link)

		positive := subjectHit && (characterHit || (!role.HasCharacter() && titleHit))
		if lenient {
			positive = subjectHit && (characterHit || titleHit)
		}
		if positive {
			ev.positive = true
			if authoritative {
				ev.positiveAuthoritative = true
			}
		}

		// A casting attribution to someone else on a page about this
		// title is a strong negative.
		if titleHit || characterHit {
			if m := attributionRe.FindStringSubmatch(raw); m != nil {
				other := textnorm.Normalize(m[1])
				if other != "" && other != normSubject && !strings.Contains(normSubject, other) && !strings.Contains(other, normSubject) {
					ev.negative = true
					ev.otherActor = strings.TrimSpace(m[1])
					if authoritative {
						ev.negativeAuthoritative = true
					}
				}
			}
		}
	}

	return ev
}

// VerifyBatch verifies roles in fixed-size batches with bounded
// concurrency and a pause between batches. Order is preserved and every
// role comes back with a Verification attached.
func (v *Verifier) VerifyBatch(ctx context.Context, subject string, roles []model.CandidateRole) []model.CandidateRole {
	out := make([]model.CandidateRole, len(roles))
	copy(out, roles)

	batchSize := v.batchSize
	if batchSize <= 0 {
		batchSize = len(out)
	}

	for start := 0; start < len(out); start += batchSize {
		if start > 0 && !sleep(ctx, v.batchDelay) {
			break
		}

		end := start + batchSize
		if end > len(out) {
			end = len(out)
		}

		pool := worker.NewPool(v.workers)
		pool.Start()
		for i := start; i < end; i++ {
			pool.Submit(&verifyJob{
				ctx:      ctx,
				verifier: v,
				subject:  subject,
				index:    i,
				role:     out[i],
			})
		}
		for _, result := range pool.Wait() {
			vr := result.(*verifyJobResult)
			verification := vr.result
			out[vr.index].Verification = &verification
		}
	}

	// Roles skipped by cancellation still need a result attached
	for i := range out {
		if out[i].Verification == nil {
			out[i].Verification = &model.VerificationResult{
				IsValid:    true,
				Confidence: model.ConfidenceUnknown,
				Reason:     "verification skipped",
				Method:     model.MethodNone,
			}
		}
	}

	return out
}

type verifyJob struct {
	ctx      context.Context
	verifier *Verifier
	subject  string
	index    int
	role     model.CandidateRole
}

func (j *verifyJob) Execute(_ context.Context) worker.Result {
	return &verifyJobResult{
		index:  j.index,
		result: j.verifier.Verify(j.ctx, j.subject, j.role),
	}
}

type verifyJobResult struct {
	index  int
	result model.VerificationResult
}

func (r *verifyJobResult) GetError() error { return nil }

// sleep waits for d unless the context ends first. Returns false on
// cancellation.
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
