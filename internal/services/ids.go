package services

import "github.com/google/uuid"

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// difference returns the ids of a that are not in b, in a's order.
func difference(a, b []string) []string {
	inB := make(map[string]struct{}, len(b))
	for _, id := range b {
		inB[id] = struct{}{}
	}
	out := []string{}
	for _, id := range a {
		if _, ok := inB[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}
