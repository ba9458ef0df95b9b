package panel

import "github.com/ProfessorBadTrip/patchdeck/internal/device"

// Reorder relocates the parameter matching target to sit immediately
// before the earliest-positioned member of group. Names match on either
// the parameter id or its display name, so presentation rules keep working
// whether patches publish pretty names or not. The input slice is never
// mutated; the result is a fresh slice either way.
//
// If target is absent, or no group member is present, the list comes back
// in its original order. Only the target moves; all other parameters keep
// their relative order.
func Reorder(params []device.Parameter, target string, group []string) []device.Parameter {
	out := make([]device.Parameter, len(params))
	copy(out, params)

	targetIdx := -1
	for i, p := range out {
		if matchesName(p, target) {
			targetIdx = i
			break
		}
	}
	if targetIdx == -1 {
		return out
	}

	moved := out[targetIdx]
	rest := append(out[:targetIdx:targetIdx], out[targetIdx+1:]...)

	// Earliest group member, positioned after the removal so the insertion
	// index needs no compensation.
	insertAt := -1
	for i, p := range rest {
		if containsName(group, p) {
			insertAt = i
			break
		}
	}
	if insertAt == -1 {
		return out
	}

	result := make([]device.Parameter, 0, len(params))
	result = append(result, rest[:insertAt]...)
	result = append(result, moved)
	result = append(result, rest[insertAt:]...)
	return result
}

func matchesName(p device.Parameter, name string) bool {
	return p.ID == name || p.DisplayName() == name
}

func containsName(names []string, p device.Parameter) bool {
	for _, n := range names {
		if matchesName(p, n) {
			return true
		}
	}
	return false
}
