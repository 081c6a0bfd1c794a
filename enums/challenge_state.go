package enums

import (
	"encoding/json"
	"fmt"
)

// ChallengeState describes derived problem severity of a device.
type ChallengeState int

const (
	// ChNoChallenge describes healthy device.
	ChNoChallenge ChallengeState = iota
	// ChWarning describes device with a warning.
	ChWarning
	// ChError describes device with an error.
	ChError
	// ChUnknown describes device with unknown state.
	ChUnknown
)

var challengeStateNames = []string{"no-challenge", "warning", "error", "unknown"}

// String returns wire representation of the challenge state.
func (i ChallengeState) String() string {
	if i < 0 || int(i) >= len(challengeStateNames) {
		return fmt.Sprintf("ChallengeState(%d)", i)
	}

	return challengeStateNames[i]
}

// ChallengeStateString retrieves an enum value from the wire name.
func ChallengeStateString(s string) (ChallengeState, error) {
	for k, v := range challengeStateNames {
		if v == s {
			return ChallengeState(k), nil
		}
	}

	return ChUnknown, fmt.Errorf("%s does not belong to ChallengeState values", s)
}

// IsProblem returns true for states worth raising with the collector.
func (i ChallengeState) IsProblem() bool {
	return ChWarning == i || ChError == i
}

// MarshalJSON implements the json.Marshaler interface.
func (i ChallengeState) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (i *ChallengeState) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("ChallengeState should be a string, got %s", data)
	}

	var err error
	*i, err = ChallengeStateString(s)
	return err
}
