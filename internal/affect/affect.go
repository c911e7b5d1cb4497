// Package affect implements the continuous emotional-state simulation.
// Five bounded scalars are decayed and nudged once per beat, then a
// discrete mood profile is derived from them.
package affect

import "time"

// State holds the five tracked hormone-like scalars, each in [0, 1].
type State struct {
	Reward    float64 `json:"reward"`    // satisfaction, anticipation
	Stress    float64 `json:"stress"`    // pressure, unmet needs
	Bonding   float64 `json:"bonding"`   // social warmth
	Stability float64 `json:"stability"` // baseline steadiness
	Arousal   float64 `json:"arousal"`   // alertness, focus

	Mood Profile `json:"mood"`
}

// Traits are the fixed personality parameters the engine is tuned by.
// They never change at runtime.
type Traits struct {
	Attachment    float64 `json:"attachment"`     // loneliness sensitivity
	MoodStability float64 `json:"mood_stability"` // dampens stress swings
	Curiosity     float64 `json:"curiosity"`      // reward from understanding
}

// DefaultTraits returns the baseline personality.
func DefaultTraits() Traits {
	return Traits{Attachment: 0.8, MoodStability: 0.6, Curiosity: 0.7}
}

// NewState returns the waking-up emotional baseline.
func NewState() State {
	return State{
		Reward:    0.8,
		Stress:    0.1,
		Bonding:   0.3,
		Stability: 0.6,
		Arousal:   0.7,
		Mood:      Profile{Primary: "stable"},
	}
}

// Inputs is the per-beat sample of everything outside the engine that
// feeds it.
type Inputs struct {
	Energy float64 // [0,1], 1 = fully rested
	Satiety float64 // [0,1], 1 = fully fed

	MeanDriveUrgency     float64 // mean urgency across all core drives
	UnderstandingUrgency float64
	CreativityUrgency    float64

	SinceInteraction time.Duration // elapsed since last user contact
	SafeLocation     bool          // current location is a home room
	Resting          bool          // asleep or in a dormancy window
}

// Decay and contribution constants, per beat.
const (
	rewardDecay    = 0.9830
	bondingDecay   = 0.9865
	stabilityDecay = 0.9933
	arousalDecay   = 0.9899

	stressDecaySafe   = 0.9473
	stressDecayUnsafe = 0.9724
	stressDecayRest   = 0.928

	lonelinessOnset = time.Hour
	lonelinessCap   = 4 * time.Hour
)

// Update advances the state by one beat. All scalars are clamped to
// [0, 1] afterwards and the mood profile is re-derived.
func Update(s *State, t Traits, in Inputs) {
	needSatisfaction := (in.Energy + in.Satiety) / 2.0

	stressDecay := stressDecayUnsafe
	if in.SafeLocation {
		stressDecay = stressDecaySafe
	}

	s.Reward *= rewardDecay
	s.Stress *= stressDecay
	s.Bonding *= bondingDecay
	s.Stability *= stabilityDecay
	s.Arousal *= arousalDecay

	stressFromNeeds := ((1.0 - in.Energy) + (1.0 - in.Satiety)) * 0.0167
	stressFromDrives := in.MeanDriveUrgency * 0.0067

	stressFromLoneliness := 0.0
	if in.SinceInteraction > lonelinessOnset {
		ratio := in.SinceInteraction.Seconds() / lonelinessCap.Seconds()
		if ratio > 1.0 {
			ratio = 1.0
		}
		stressFromLoneliness = ratio * t.Attachment * 0.005
	}

	// A freshly satisfied creative drive reads as pride and bleeds
	// stress off faster.
	if in.CreativityUrgency < 0.1 {
		s.Stress *= 0.965
	}

	s.Stress += stressFromNeeds + stressFromDrives + stressFromLoneliness
	s.Stress -= s.Bonding*0.0267 + s.Stability*0.0267

	if in.SinceInteraction < 10*time.Minute {
		s.Bonding += 0.0133
	}

	stressResilience := 1.0 - t.MoodStability
	if s.Stress > 0.7 {
		s.Stability -= (s.Stress - 0.7) * 0.0033 * stressResilience
	}
	if needSatisfaction > 0.8 {
		s.Stability += (needSatisfaction - 0.8) * 0.0067 * t.MoodStability
	}

	// Diminishing returns: the closer needs are to met, the smaller the
	// marginal reward.
	rewardFromNeeds := (1.0 - (1.0-needSatisfaction)*(1.0-needSatisfaction)) * 0.0033
	rewardFromUnderstanding := (1.0 - in.UnderstandingUrgency) * 0.005 * t.Curiosity
	rewardFromCreativity := (1.0 - in.CreativityUrgency) * 0.0033
	s.Reward += rewardFromNeeds + rewardFromUnderstanding + rewardFromCreativity

	// Soft ceiling: euphoria damps itself.
	if s.Reward > 0.9 {
		s.Reward *= 0.95
	}

	if in.Resting {
		s.Stress *= stressDecayRest
		s.Stability = min(1.0, s.Stability+0.0167)
	}

	s.Reward = clamp01(s.Reward)
	s.Stress = clamp01(s.Stress)
	s.Bonding = clamp01(s.Bonding)
	s.Stability = clamp01(s.Stability)
	s.Arousal = clamp01(s.Arousal)

	s.Mood = DeriveMood(s)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
