// Package tmdb provides the minimal TMDB API client used for primary role
// discovery.
//
// It exposes person search (first match only; cross-validation downstream is
// responsible for catching same-name mismatches) and combined movie/TV credit
// retrieval. Responses are strongly typed so the discovery stage can filter
// and rank them. Options allow tests to supply custom HTTP clients without
// modifying production code.
package tmdb
