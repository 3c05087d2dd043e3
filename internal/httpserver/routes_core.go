// internal/httpserver/routes_core.go
//
// Stateless core operations:
//   - POST /feedback → pattern for a guess against a secret
//   - POST /filter   → candidates left after one observed (guess, pattern)

package httpserver

import (
	"net/http"
	"strings"

	"github.com/robalobadob/wordle/apps/go-solver/internal/candidates"
	"github.com/robalobadob/wordle/apps/go-solver/internal/feedback"
)

type feedbackReq struct {
	Guess  string `json:"guess"`
	Secret string `json:"secret"`
}

type feedbackRes struct {
	Pattern feedback.Pattern `json:"pattern"`
	Solved  bool             `json:"solved"`
}

// handleFeedback scores a guess against a secret.
func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackReq
	if err := decode(r, &req); err != nil {
		writeFailure(w, r, err)
		return
	}
	p, err := feedback.Compute(strings.ToLower(strings.TrimSpace(req.Guess)), strings.ToLower(strings.TrimSpace(req.Secret)))
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, feedbackRes{Pattern: p, Solved: p.Solved()})
}

type filterReq struct {
	Candidates []string `json:"candidates"` // empty means the possible list
	Guess      string   `json:"guess"`
	Pattern    string   `json:"pattern"`
}

type filterRes struct {
	Candidates []string `json:"candidates"`
	Remaining  int      `json:"remaining"`
}

// handleFilter narrows a candidate set by one observed (guess, pattern).
func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	var req filterReq
	if err := decode(r, &req); err != nil {
		writeFailure(w, r, err)
		return
	}
	set := candidates.FromList(s.possible)
	if len(req.Candidates) > 0 {
		var err error
		if set, err = candidates.New(req.Candidates); err != nil {
			writeFailure(w, r, err)
			return
		}
	}
	p, err := feedback.Parse(req.Pattern)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	next, err := set.Filter(strings.ToLower(strings.TrimSpace(req.Guess)), p)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, filterRes{Candidates: next.Words(), Remaining: next.Len()})
}
