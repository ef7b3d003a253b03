package repository

import "github.com/google/uuid"

// Id columns are postgres uuids; anything else would fail the query with a cast error.
func isValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func validIDs(ids []string) []string {
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		if isValidID(id) {
			result = append(result, id)
		}
	}
	return result
}
