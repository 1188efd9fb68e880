package problemfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"ride-schedule-service/internal/domain"
	"strconv"
	"strings"
)

const (
	headerFields = 6
	rideFields   = 6
	maxLineBytes = 1 << 20 // problem lines only; plan lines are unbounded
)

// ReadFile parses a problem file from disk. The instance is named after the
// file's base name without extension.
func ReadFile(path string) (*domain.Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read problem file: %w", err)
	}
	defer f.Close()

	inst, err := Parse(NameFromPath(path), f)
	if err != nil {
		return nil, fmt.Errorf("read problem file %q: %w", path, err)
	}
	return inst, nil
}

// Parse reads the problem format:
//
//	rows cols vehicles rides bonus steps
//	startRow startCol finishRow finishCol earliest latest   (one line per ride)
//
// Ride ids follow file order. Vehicles start at (0,0) at time 0.
func Parse(name string, r io.Reader) (*domain.Instance, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	lineNo := 0
	nextLine := func() ([]int, bool, error) {
		for sc.Scan() {
			lineNo++
			line := strings.TrimSpace(sc.Text())
			if line == "" {
				continue
			}
			fields, err := readInts(line)
			if err != nil {
				return nil, false, fmt.Errorf("line %d: %w", lineNo, err)
			}
			return fields, true, nil
		}
		if err := sc.Err(); err != nil {
			return nil, false, fmt.Errorf("scan: %w", err)
		}
		return nil, false, nil
	}

	header, ok, err := nextLine()
	if err != nil {
		return nil, fmt.Errorf("parse problem header: %w", err)
	}
	if !ok {
		return nil, errors.New("parse problem header: empty input")
	}
	if len(header) != headerFields {
		return nil, fmt.Errorf("parse problem header: want %d fields, got %d", headerFields, len(header))
	}

	problem := domain.Problem{
		Rows:         header[0],
		Cols:         header[1],
		VehicleCount: header[2],
		RideCount:    header[3],
		Bonus:        header[4],
		SimSteps:     header[5],
	}

	if err := problem.CheckFleet(); err != nil {
		return nil, fmt.Errorf("parse problem header: %w", err)
	}

	rides := []domain.Ride{}
	for {
		fields, ok, err := nextLine()
		if err != nil {
			return nil, fmt.Errorf("parse ride %d: %w", len(rides), err)
		}
		if !ok {
			break
		}
		if len(fields) != rideFields {
			return nil, fmt.Errorf("parse ride %d: line %d: want %d fields, got %d", len(rides), lineNo, rideFields, len(fields))
		}

		rides = append(rides, domain.Ride{
			RideID:   len(rides),
			Start:    domain.Position{Row: fields[0], Col: fields[1]},
			Finish:   domain.Position{Row: fields[2], Col: fields[3]},
			Earliest: fields[4],
			Latest:   fields[5],
		})
	}

	if len(rides) != problem.RideCount {
		return nil, fmt.Errorf("parse problem: header declares %d rides, found %d", problem.RideCount, len(rides))
	}

	return &domain.Instance{
		Name:     name,
		Problem:  problem,
		Vehicles: domain.NewFleet(problem.VehicleCount),
		Rides:    rides,
	}, nil
}

func readInts(line string) ([]int, error) {
	parts := strings.Fields(line)
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", p)
		}
		if n < 0 {
			return nil, fmt.Errorf("negative value %d", n)
		}
		out = append(out, n)
	}
	return out, nil
}
