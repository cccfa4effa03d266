package mcu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"funkbake/core"
)

// DebugLinePrefix starts every per-cycle line on the UART console
const DebugLinePrefix = "[BEACON] cycle "

var ErrNotCycleLine = errors.New("not a cycle debug line")

// ParseDebugLine parses a line produced by core.FormatCycleReport.
// The message text is not part of the line and stays empty.
func ParseDebugLine(line string) (core.CycleReport, error) {
	var r core.CycleReport

	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, DebugLinePrefix) {
		return r, ErrNotCycleLine
	}

	seen := 0
	for _, field := range strings.Fields(line[len(DebugLinePrefix):]) {
		key, value, ok := strings.Cut(field, "=")
		if !ok {
			return r, fmt.Errorf("field %q: missing value", field)
		}
		n, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return r, fmt.Errorf("field %q: %w", key, err)
		}
		v := uint32(n)

		switch key {
		case "n":
			r.Cycle = v
		case "idx":
			if v >= core.SelectorPositions {
				return r, fmt.Errorf("index %d out of range", v)
			}
			r.Index = uint8(v)
		case "t":
			r.ElapsedMs = v
		case "idle":
			r.IdleMs = v
		case "total":
			r.TotalMs = v
		case "overrun":
			r.Overrun = v != 0
		default:
			continue
		}
		seen++
	}
	if seen == 0 {
		return r, ErrNotCycleLine
	}

	// The trailer is whatever the total leaves after message and idle
	if sum := r.ElapsedMs + r.IdleMs; r.TotalMs >= sum {
		r.TrailerMs = r.TotalMs - sum
	}
	return r, nil
}

// ScanDebugLines reads console text from r and passes every cycle line to
// fn. Other lines go to other, which may be nil. Returns when r is
// exhausted, the context ends or a read fails.
func ScanDebugLines(ctx context.Context, r io.Reader, fn func(core.CycleReport), other func(string)) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		line := scanner.Text()
		report, err := ParseDebugLine(line)
		if err != nil {
			if other != nil {
				other(line)
			}
			continue
		}
		fn(report)
	}
	if ctx.Err() != nil {
		return nil
	}
	if err := scanner.Err(); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read debug console: %w", err)
	}
	return nil
}
