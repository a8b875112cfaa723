package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// PlanName represents the unique name of a plan.
// The name doubles as the storage key, so it must be filesystem-safe:
// lowercase letters, digits, and single hyphens.
type PlanName string

var (
	// planNamePattern validates lowercase-hyphenated names
	planNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

	// maxPlanNameLength is the maximum allowed length for a plan name
	maxPlanNameLength = 100
)

// NewPlanName creates a new PlanName value object with validation
func NewPlanName(value string) (PlanName, error) {
	n := PlanName(value)
	if err := n.Validate(); err != nil {
		return "", err
	}
	return n, nil
}

// Validate checks if the plan name is valid
func (n PlanName) Validate() error {
	s := string(n)

	if s == "" {
		return fmt.Errorf("plan name cannot be empty")
	}

	if len(s) > maxPlanNameLength {
		return fmt.Errorf("plan name %q exceeds maximum length of %d characters", s, maxPlanNameLength)
	}

	if !planNamePattern.MatchString(s) {
		return fmt.Errorf("plan name %q must contain only lowercase letters, numbers, and hyphens", s)
	}

	if strings.Contains(s, "--") {
		return fmt.Errorf("plan name %q cannot contain consecutive hyphens", s)
	}

	if strings.HasSuffix(s, "-") {
		return fmt.Errorf("plan name %q cannot end with a hyphen", s)
	}

	return nil
}

// String returns the string representation
func (n PlanName) String() string {
	return string(n)
}
