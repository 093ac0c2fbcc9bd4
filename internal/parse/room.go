package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	numberRe = regexp.MustCompile(`-\s*(\d+)\s*$`)
	floorRe  = regexp.MustCompile(`(?i)(\d+)\s*(?:F|FL)?\s*$`)
	spaceRe  = regexp.MustCompile(`\s+`)
)

// RoomLabel holds the structured parts of a room name.
type RoomLabel struct {
	Block  string
	Floor  int
	Number int
}

// ParseRoomLabel splits a room name such as "A-2-14", "B#1-2" or
// "North Hall 3F-07" into block, floor and room number.
func ParseRoomLabel(raw string) (RoomLabel, error) {
	// '#' separates block from floor, keep it from gluing digits together
	s := strings.ReplaceAll(strings.TrimSpace(raw), "#", " ")
	s = strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))

	number := 0
	if loc := numberRe.FindStringSubmatchIndex(s); loc != nil {
		if n, err := strconv.Atoi(s[loc[2]:loc[3]]); err == nil {
			number = n
			s = strings.TrimSpace(s[:loc[0]])
		}
	}

	floor := 0
	block := s
	if loc := floorRe.FindStringSubmatchIndex(s); loc != nil {
		if n, err := strconv.Atoi(s[loc[2]:loc[3]]); err == nil {
			floor = n
			block = s[:loc[0]]
		}
	}
	block = strings.TrimRight(strings.TrimSpace(block), "- ")

	if floor == 0 || block == "" {
		return RoomLabel{}, fmt.Errorf("unable to parse room label: %q", raw)
	}

	return RoomLabel{Block: block, Floor: floor, Number: number}, nil
}
