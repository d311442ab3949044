package insuredevent

import (
	"fmt"
	"strings"
)

// RegressFlag is the closed set of recourse states of an insured event.
type RegressFlag string

const (
	RegressFlagRegress    RegressFlag = "regress"
	RegressFlagNonRegress RegressFlag = "non-regress"
	RegressFlagPool       RegressFlag = "pool"
)

// Labels the upstream API uses for the same three states.
var regressFlagAliases = map[string]RegressFlag{
	"regress":     RegressFlagRegress,
	"non-regress": RegressFlagNonRegress,
	"pool":        RegressFlagPool,
	"регресс":     RegressFlagRegress,
	"не регресс":  RegressFlagNonRegress,
	"пул":         RegressFlagPool,
}

// ParseRegressFlag normalizes a wire value. Anything outside the enumeration is rejected.
func ParseRegressFlag(raw string) (RegressFlag, error) {
	normalized := strings.ToLower(strings.Join(strings.Fields(raw), " "))
	if flag, ok := regressFlagAliases[normalized]; ok {
		return flag, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidRegressFlag, raw)
}

func (f RegressFlag) Valid() bool {
	switch f {
	case RegressFlagRegress, RegressFlagNonRegress, RegressFlagPool:
		return true
	default:
		return false
	}
}

// InsuredEvent is a read-only claim record as exposed by the search and detail endpoints.
type InsuredEvent struct {
	PolicyID         string      `json:"policyId"`
	PolicyNumber     string      `json:"policyNumber"`
	ContractNumber   string      `json:"contractNumber"`
	InsurantFullName string      `json:"insurantFullName"`
	ProductName      string      `json:"productName"`
	EventNumber      string      `json:"eventNumber"`
	EventStatus      string      `json:"eventStatus"`
	RegressFlag      RegressFlag `json:"regressFlag"`
	ChangedAt        string      `json:"changedAt"`
}
