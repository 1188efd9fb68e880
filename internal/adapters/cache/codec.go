package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"ride-schedule-service/internal/domain"
	"strings"
)

var errEmptyKey = errors.New("plan cache: key must not be empty")

func checkKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return errEmptyKey
	}
	return nil
}

func encodePlan(a domain.Assignment) ([]byte, error) {
	if a == nil {
		return nil, errors.New("encode plan: assignment is nil")
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("encode plan: %w", err)
	}
	return b, nil
}

func decodePlan(b []byte) (domain.Assignment, error) {
	var a domain.Assignment
	if err := json.Unmarshal(b, &a); err != nil {
		return nil, fmt.Errorf("decode plan: %w", err)
	}
	for i := range a {
		if a[i] == nil {
			a[i] = []int{}
		}
	}
	return a, nil
}
