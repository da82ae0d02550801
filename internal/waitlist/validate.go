package waitlist

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	spaceRun     = regexp.MustCompile(`\s+`)
)

var allowedRoles = []string{RoleCreator, RoleBrand, RoleSeller, RoleJustJoining}

var allowedGoals = []string{GoalFindBrandDeals, GoalGrowing, GoalDiscovering, GoalManaging}

// ParseCreate canonicalizes a raw waitlist signup body. The public form went
// through several revisions, so older field aliases, a comma-separated goals
// string, and a couple of historical misspellings are still accepted.
func ParseCreate(body []byte) (CreateInput, error) {
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		return CreateInput{}, fmt.Errorf("body must be a JSON object")
	}

	fullName, _ := firstString(raw, "full_name", "fullName", "fullname")
	if strings.TrimSpace(fullName) == "" {
		return CreateInput{}, fmt.Errorf("full_name is required")
	}

	email, _ := firstString(raw, "email")
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailPattern.MatchString(email) {
		return CreateInput{}, fmt.Errorf("email must be a valid email address")
	}

	roleRaw, _ := firstString(raw, "role")
	role, ok := canonicalRole(roleRaw)
	if !ok {
		return CreateInput{}, fmt.Errorf("role must be one of: %s", strings.Join(allowedRoles, ", "))
	}

	goals := collectGoals(raw)
	if len(goals) == 0 {
		return CreateInput{}, fmt.Errorf("goals must include at least one of: %s", strings.Join(allowedGoals, ", "))
	}

	return CreateInput{
		FullName: normalizeSpaces(fullName),
		Email:    email,
		Role:     role,
		Goals:    goals,
	}, nil
}

func firstString(raw map[string]any, keys ...string) (string, bool) {
	for _, key := range keys {
		if v, ok := raw[key].(string); ok {
			return v, true
		}
	}
	return "", false
}

func normalizeSpaces(s string) string {
	return spaceRun.ReplaceAllString(strings.TrimSpace(s), " ")
}

func canonicalRole(role string) (string, bool) {
	switch strings.ToLower(normalizeSpaces(role)) {
	case "creator":
		return RoleCreator, true
	case "brand":
		return RoleBrand, true
	case "seller":
		return RoleSeller, true
	case "just joining", "just-joining", "just_joining":
		return RoleJustJoining, true
	default:
		return "", false
	}
}

func canonicalGoal(goal string) (string, bool) {
	switch strings.ToLower(normalizeSpaces(goal)) {
	case "find brand deals":
		return GoalFindBrandDeals, true
	case "growing as a creator", "growingas a creator":
		return GoalGrowing, true
	case "discovering creators", "discovering crestors":
		return GoalDiscovering, true
	case "managing collaboration and deals":
		return GoalManaging, true
	default:
		return "", false
	}
}

// collectGoals accepts goals under several historical keys, as either a JSON
// array or a single comma-separated string, canonicalizes and deduplicates.
// Unrecognized values are dropped rather than rejected.
func collectGoals(raw map[string]any) []string {
	var candidates []string
	for _, key := range []string{"goals", "goal", "intent", "interests", "what_you_want", "whatYouWant", "what"} {
		v, ok := raw[key]
		if !ok {
			continue
		}
		switch t := v.(type) {
		case string:
			candidates = append(candidates, splitGoals(t)...)
		case []any:
			for _, item := range t {
				if s, ok := item.(string); ok {
					candidates = append(candidates, splitGoals(s)...)
				}
			}
		}
		break
	}

	seen := make(map[string]struct{}, len(candidates))
	var goals []string
	for _, candidate := range candidates {
		goal, ok := canonicalGoal(candidate)
		if !ok {
			continue
		}
		if _, dup := seen[goal]; dup {
			continue
		}
		seen[goal] = struct{}{}
		goals = append(goals, goal)
	}
	return goals
}

func splitGoals(value string) []string {
	parts := strings.Split(value, ",")
	var out []string
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
