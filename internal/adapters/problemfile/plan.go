package problemfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"ride-schedule-service/internal/domain"
	"strconv"
	"strings"
)

// NameFromPath strips directory and extension: "in/a_example.in" -> "a_example".
func NameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// WriteAssignment writes one line per vehicle: "k r1 r2 ... rk".
func WriteAssignment(w io.Writer, a domain.Assignment) error {
	bw := bufio.NewWriter(w)
	for _, rides := range a {
		var sb strings.Builder
		sb.WriteString(strconv.Itoa(len(rides)))
		for _, id := range rides {
			sb.WriteByte(' ')
			sb.WriteString(strconv.Itoa(id))
		}
		sb.WriteByte('\n')
		if _, err := bw.WriteString(sb.String()); err != nil {
			return fmt.Errorf("write assignment: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write assignment: flush: %w", err)
	}
	return nil
}

// WriteAssignmentFile writes the plan to path, creating parent directories.
func WriteAssignmentFile(path string, a domain.Assignment) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("write assignment file %q: %w", path, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write assignment file %q: %w", path, err)
	}
	if err := WriteAssignment(f, a); err != nil {
		f.Close()
		return fmt.Errorf("write assignment file %q: %w", path, err)
	}
	return f.Close()
}

// ParseAssignment reads the plan format for a fleet of the given size.
// Line i is vehicle i; "0" is an empty plan and blank lines are ignored.
// Ride ids are bounds-checked against rideCount so the simulator only sees
// well-formed plans from files. Lines may be arbitrarily long.
func ParseAssignment(r io.Reader, vehicleCount, rideCount int) (domain.Assignment, error) {
	br := bufio.NewReader(r)

	a := domain.NewAssignment(vehicleCount)
	vehicle := 0
	lineNo := 0
	for {
		raw, readErr := br.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return nil, fmt.Errorf("parse assignment: read line %d: %w", lineNo+1, readErr)
		}
		if readErr == io.EOF && raw == "" {
			break
		}
		lineNo++

		line := strings.TrimSpace(raw)
		if line != "" {
			fields, err := readInts(line)
			if err != nil {
				return nil, fmt.Errorf("parse assignment: line %d: %w", lineNo, err)
			}
			if vehicle >= vehicleCount {
				return nil, fmt.Errorf("parse assignment: line %d: more plans than %d vehicles", lineNo, vehicleCount)
			}

			k := fields[0]
			if len(fields) != k+1 {
				return nil, fmt.Errorf("parse assignment: line %d: declares %d rides, lists %d", lineNo, k, len(fields)-1)
			}
			for _, id := range fields[1:] {
				if id >= rideCount {
					return nil, fmt.Errorf("parse assignment: line %d: ride %d out of range [0, %d)", lineNo, id, rideCount)
				}
			}

			a[vehicle] = append(a[vehicle], fields[1:]...)
			vehicle++
		}

		if readErr == io.EOF {
			break
		}
	}

	return a, nil
}

// ReadAssignmentFile parses a plan file for the given instance.
func ReadAssignmentFile(path string, inst *domain.Instance) (domain.Assignment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read assignment file: %w", err)
	}
	defer f.Close()

	a, err := ParseAssignment(f, len(inst.Vehicles), len(inst.Rides))
	if err != nil {
		return nil, fmt.Errorf("read assignment file %q: %w", path, err)
	}
	return a, nil
}
