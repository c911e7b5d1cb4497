package affect

// Profile is the discrete mood read-out derived from the scalar state:
// one primary label plus up to two strong runner-ups.
type Profile struct {
	Primary   string   `json:"primary"`
	Secondary []string `json:"secondary,omitempty"`
}

// moodDef scores one mood label from the scalar state. A score of zero
// means the label does not apply this beat.
type moodDef struct {
	name  string
	score func(s *State) float64
}

// moodTable is evaluated in order; argmax ties resolve to the earlier
// entry, so the ordering here is load-bearing.
var moodTable = []moodDef{
	{"anxious", func(s *State) float64 {
		if s.Stress > 0.5 {
			return s.Stress
		}
		return 0
	}},
	{"stressed", func(s *State) float64 {
		if s.Stress > 0.6 {
			return s.Stress * 0.8
		}
		return 0
	}},
	{"elated", func(s *State) float64 {
		if s.Reward > 0.8 {
			return s.Reward
		}
		return 0
	}},
	{"motivated", func(s *State) float64 {
		if s.Reward > 0.6 {
			return s.Reward
		}
		return 0
	}},
	{"melancholic", func(s *State) float64 {
		if s.Stability < 0.4 {
			return 1.0 - s.Stability
		}
		return 0
	}},
	{"content", func(s *State) float64 {
		if s.Bonding > 0.6 {
			return s.Bonding
		}
		return 0
	}},
	{"focused", func(s *State) float64 {
		if s.Arousal > 0.7 {
			return s.Arousal
		}
		return 0
	}},
	{"stable", func(s *State) float64 {
		d := s.Stability - 0.5
		if d < 0 {
			d = -d
		}
		return (s.Stability - d) * 1.5
	}},
}

// DeriveMood computes the mood profile from the current scalars.
// Secondary moods are the up-to-two runner-ups scoring above 0.5,
// strongest first.
func DeriveMood(s *State) Profile {
	scores := make([]float64, len(moodTable))
	allZero := true
	for i, def := range moodTable {
		scores[i] = def.score(s)
		if scores[i] != 0 {
			allZero = false
		}
	}
	if allZero {
		return Profile{Primary: "neutral"}
	}

	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}

	profile := Profile{Primary: moodTable[best].name}

	// Collect runner-ups above 0.5, highest first. The table is small
	// enough that repeated max scans beat sorting a copy.
	taken := map[int]bool{best: true}
	for len(profile.Secondary) < 2 {
		next := -1
		for i, sc := range scores {
			if taken[i] || sc <= 0.5 {
				continue
			}
			if next == -1 || sc > scores[next] {
				next = i
			}
		}
		if next == -1 {
			break
		}
		taken[next] = true
		profile.Secondary = append(profile.Secondary, moodTable[next].name)
	}
	return profile
}
