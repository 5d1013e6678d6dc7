package check

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/rune-engine/internal/ability"
	"github.com/KirkDiggler/rune-engine/internal/dice"
	engineerr "github.com/KirkDiggler/rune-engine/internal/errors"
)

// CooperationType selects how individual results combine into one outcome.
type CooperationType int

const (
	// WeakestLink reports the worst individual outcome
	WeakestLink CooperationType = iota + 1
	// BestAttempt reports the best individual outcome
	BestAttempt
	// Combined sums net successes and re-buckets against the shared DC
	Combined
	// Assisted lets helpers add bonus dice to one primary roller
	Assisted
)

var cooperationNames = map[CooperationType]string{
	WeakestLink: "weakest-link",
	BestAttempt: "best-attempt",
	Combined:    "combined",
	Assisted:    "assisted",
}

func (c CooperationType) String() string {
	if name, ok := cooperationNames[c]; ok {
		return name
	}
	return fmt.Sprintf("cooperation(%d)", int(c))
}

// ParseCooperationType converts a name such as "weakest-link" into a CooperationType.
func ParseCooperationType(name string) (CooperationType, error) {
	for c, n := range cooperationNames {
		if n == name {
			return c, nil
		}
	}
	return 0, engineerr.InvalidArgumentf("unknown cooperation type %q", name)
}

// ParticipantResult pairs a participant with their individual check.
type ParticipantResult struct {
	ParticipantID string
	Result        *Result
}

// HelperContribution records whether a helper earned the primary roller a bonus die.
type HelperContribution struct {
	HelperID        string
	NetSuccesses    int
	GrantedBonusDie bool
}

// CooperativeResult is the aggregated outcome of a group check.
type CooperativeResult struct {
	Type           CooperationType
	ParticipantIDs []string
	SkillID        string
	DC             int

	FinalOutcome      Outcome
	FinalNetSuccesses int
	FinalMargin       int

	// ActiveRollerID is empty for Combined checks
	ActiveRollerID string

	IndividualResults []ParticipantResult
	HelperBonuses     []HelperContribution

	HadFumble bool
}

// IsSuccess reports whether the group met the DC.
func (r *CooperativeResult) IsSuccess() bool {
	return r.FinalOutcome.IsSuccess()
}

func (r *CooperativeResult) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s DC %d: %s with %d net successes (margin %+d)",
		r.Type, r.SkillID, r.DC, r.FinalOutcome, r.FinalNetSuccesses, r.FinalMargin)
	if r.ActiveRollerID != "" {
		fmt.Fprintf(&b, ", decided by %s", r.ActiveRollerID)
	}
	if len(r.HelperBonuses) > 0 {
		granted := 0
		for _, h := range r.HelperBonuses {
			if h.GrantedBonusDie {
				granted++
			}
		}
		fmt.Fprintf(&b, ", %d of %d helpers added a die", granted, len(r.HelperBonuses))
	}
	if r.HadFumble {
		b.WriteString(", someone fumbled")
	}
	return b.String()
}

// Aggregate combines already-resolved individual checks under a
// WeakestLink, BestAttempt or Combined policy. Ties on the extreme outcome
// go to the participant listed first.
func (r *Resolver) Aggregate(coopType CooperationType, skillID string, dc int, results []ParticipantResult) (*CooperativeResult, error) {
	if coopType == Assisted {
		return nil, engineerr.InvalidArgument("assisted checks must be resolved with ResolveCooperative")
	}
	if dc < 0 {
		return nil, engineerr.InvalidArgumentf("DC cannot be negative, got %d", dc)
	}

	ids := make([]string, len(results))
	for i, pr := range results {
		if pr.Result == nil {
			return nil, engineerr.InvalidArgumentf("participant %s has no result", pr.ParticipantID)
		}
		ids[i] = pr.ParticipantID
	}
	if err := validateParticipantIDs(ids); err != nil {
		return nil, err
	}

	out := &CooperativeResult{
		Type:              coopType,
		ParticipantIDs:    ids,
		SkillID:           skillID,
		DC:                dc,
		IndividualResults: results,
	}
	for _, pr := range results {
		if pr.Result.IsFumble {
			out.HadFumble = true
		}
	}

	switch coopType {
	case WeakestLink, BestAttempt:
		chosen := 0
		for i := 1; i < len(results); i++ {
			candidate := results[i].Result.Outcome
			current := results[chosen].Result.Outcome
			if (coopType == WeakestLink && candidate < current) || (coopType == BestAttempt && candidate > current) {
				chosen = i
			}
		}
		picked := results[chosen].Result
		out.ActiveRollerID = results[chosen].ParticipantID
		out.FinalOutcome = picked.Outcome
		out.FinalNetSuccesses = picked.NetSuccesses
		out.FinalMargin = picked.NetSuccesses - dc

	case Combined:
		total := 0
		for _, pr := range results {
			total += pr.Result.NetSuccesses
		}
		out.FinalNetSuccesses = total
		out.FinalMargin = total - dc
		out.FinalOutcome = r.rules.Outcomes.Classify(out.FinalMargin)

	default:
		return nil, engineerr.InvalidArgumentf("unknown cooperation type %d", int(coopType))
	}

	return out, nil
}

// Participant is one member of a group check.
type Participant struct {
	ID        string
	Pool      dice.Pool
	Modifiers *ability.Evaluation
}

// CooperativeRequest describes a group check to roll and aggregate.
type CooperativeRequest struct {
	Type         CooperationType
	SkillID      string
	DC           int
	Participants []Participant

	// PrimaryID names the authoritative roller of an Assisted check
	PrimaryID string
}

// ResolveCooperative rolls every participant and aggregates the results.
// For Assisted checks the helpers roll first so their bonus dice are in the
// primary's pool before it is rolled.
func (r *Resolver) ResolveCooperative(req *CooperativeRequest) (*CooperativeResult, error) {
	if req == nil {
		return nil, engineerr.InvalidArgument("cooperative request cannot be nil")
	}
	if len(req.Participants) == 0 {
		return nil, engineerr.InvalidArgument("cooperative check needs at least one participant")
	}

	ids := make([]string, len(req.Participants))
	for i, p := range req.Participants {
		ids[i] = p.ID
	}
	if err := validateParticipantIDs(ids); err != nil {
		return nil, err
	}

	if req.Type == Assisted {
		return r.resolveAssisted(req, ids)
	}
	if _, ok := cooperationNames[req.Type]; !ok {
		return nil, engineerr.InvalidArgumentf("unknown cooperation type %d", int(req.Type))
	}

	results := make([]ParticipantResult, len(req.Participants))
	for i, p := range req.Participants {
		res, err := r.Perform(&Request{
			SkillID:   req.SkillID,
			Pool:      p.Pool,
			DC:        req.DC,
			Modifiers: p.Modifiers,
		})
		if err != nil {
			return nil, engineerr.Wrapf(err, "failed to resolve participant %s", p.ID)
		}
		results[i] = ParticipantResult{ParticipantID: p.ID, Result: res}
	}

	return r.Aggregate(req.Type, req.SkillID, req.DC, results)
}

// AssistBonus counts the bonus dice earned by helper results.
func (r *Resolver) AssistBonus(helpers []ParticipantResult) (int, []HelperContribution) {
	bonus := 0
	contributions := make([]HelperContribution, len(helpers))
	for i, h := range helpers {
		granted := h.Result.NetSuccesses >= r.rules.AssistThreshold
		if granted {
			bonus++
		}
		contributions[i] = HelperContribution{
			HelperID:        h.ParticipantID,
			NetSuccesses:    h.Result.NetSuccesses,
			GrantedBonusDie: granted,
		}
	}
	return bonus, contributions
}

func (r *Resolver) resolveAssisted(req *CooperativeRequest, ids []string) (*CooperativeResult, error) {
	if len(req.Participants) < 2 {
		return nil, engineerr.InvalidArgument("assisted check needs a primary roller and at least one helper")
	}
	if req.PrimaryID == "" {
		return nil, engineerr.InvalidArgument("assisted check needs a primary roller")
	}

	var primary *Participant
	helpers := make([]ParticipantResult, 0, len(req.Participants)-1)
	for i := range req.Participants {
		p := &req.Participants[i]
		if p.ID == req.PrimaryID {
			primary = p
			continue
		}

		res, err := r.Perform(&Request{
			SkillID:   req.SkillID,
			Pool:      p.Pool,
			DC:        req.DC,
			Modifiers: p.Modifiers,
		})
		if err != nil {
			return nil, engineerr.Wrapf(err, "failed to resolve helper %s", p.ID)
		}
		helpers = append(helpers, ParticipantResult{ParticipantID: p.ID, Result: res})
	}
	if primary == nil {
		return nil, engineerr.InvalidArgumentf("primary roller %s is not a participant", req.PrimaryID)
	}

	bonus, contributions := r.AssistBonus(helpers)

	pool, err := primary.Pool.AddDice(bonus)
	if err != nil {
		return nil, err
	}
	primaryResult, err := r.Perform(&Request{
		SkillID:   req.SkillID,
		Pool:      pool,
		DC:        req.DC,
		Modifiers: primary.Modifiers,
	})
	if err != nil {
		return nil, engineerr.Wrapf(err, "failed to resolve primary roller %s", primary.ID)
	}

	individual := append(helpers, ParticipantResult{ParticipantID: primary.ID, Result: primaryResult})
	hadFumble := false
	for _, pr := range individual {
		if pr.Result.IsFumble {
			hadFumble = true
		}
	}

	return &CooperativeResult{
		Type:              Assisted,
		ParticipantIDs:    ids,
		SkillID:           req.SkillID,
		DC:                req.DC,
		FinalOutcome:      primaryResult.Outcome,
		FinalNetSuccesses: primaryResult.NetSuccesses,
		FinalMargin:       primaryResult.Margin,
		ActiveRollerID:    primary.ID,
		IndividualResults: individual,
		HelperBonuses:     contributions,
		HadFumble:         hadFumble,
	}, nil
}

func validateParticipantIDs(ids []string) error {
	if len(ids) == 0 {
		return engineerr.InvalidArgument("cooperative check needs at least one participant")
	}
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id == "" {
			return engineerr.InvalidArgument("participant id is required")
		}
		if seen[id] {
			return engineerr.InvalidArgumentf("participant %s appears more than once", id)
		}
		seen[id] = true
	}
	return nil
}
