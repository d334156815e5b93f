package main

import (
	"fmt"
	"strconv"
)

func parseID(s string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("invalid id %q: must be a positive integer", s)
	}
	return v, nil
}

func mustID(s string) int64 {
	v, err := parseID(s)
	if err != nil {
		fatal("parse id", err)
	}
	return v
}
