package simulation

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"ridesim/internal/domain/entities"
)

// ParseEvents reads a scenario from r, one event per line:
//
//	<timestamp> RiderRequest <id> <origin> <destination> <patience>
//	<timestamp> DriverRequest <id> <location> <speed>
//
// Locations use the "row,column" form. Blank lines and lines starting
// with '#' are skipped. Any malformed line aborts the parse with an error
// naming the line number.
func ParseEvents(r io.Reader) ([]Event, error) {
	var events []Event

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		event, err := parseEventLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		events = append(events, event)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read events: %w", err)
	}

	return events, nil
}

// ParseEventFile reads a scenario from the named file.
func ParseEventFile(path string) ([]Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open event file: %w", err)
	}
	defer f.Close()
	return ParseEvents(f)
}

func parseEventLine(line string) (Event, error) {
	tokens := strings.Fields(line)
	if len(tokens) < 2 {
		return nil, fmt.Errorf("malformed event %q", line)
	}

	timestamp, err := strconv.Atoi(tokens[0])
	if err != nil {
		return nil, fmt.Errorf("timestamp %q: %w", tokens[0], err)
	}

	switch eventType := tokens[1]; eventType {
	case "RiderRequest":
		if len(tokens) != 6 {
			return nil, fmt.Errorf("RiderRequest wants id origin destination patience, got %q", line)
		}
		origin, err := entities.ParseLocation(tokens[3])
		if err != nil {
			return nil, err
		}
		destination, err := entities.ParseLocation(tokens[4])
		if err != nil {
			return nil, err
		}
		patience, err := strconv.Atoi(tokens[5])
		if err != nil {
			return nil, fmt.Errorf("patience %q: %w", tokens[5], err)
		}
		rider := entities.NewRider(tokens[2], patience, origin, destination)
		return NewRiderRequest(timestamp, rider), nil

	case "DriverRequest":
		if len(tokens) != 5 {
			return nil, fmt.Errorf("DriverRequest wants id location speed, got %q", line)
		}
		location, err := entities.ParseLocation(tokens[3])
		if err != nil {
			return nil, err
		}
		speed, err := strconv.Atoi(tokens[4])
		if err != nil {
			return nil, fmt.Errorf("speed %q: %w", tokens[4], err)
		}
		driver := entities.NewDriver(tokens[2], location, speed)
		return NewDriverRequest(timestamp, driver), nil

	default:
		return nil, fmt.Errorf("unknown event type %q", eventType)
	}
}
