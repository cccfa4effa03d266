//go:build js && wasm

// Browser companion for the beacon: message planning and telemetry
// decoding for a WebSerial page.
package main

import (
	"encoding/hex"
	"syscall/js"

	"funkbake/core"
	"funkbake/host/sim"
	"funkbake/protocol"
)

func main() {
	js.Global().Set("funkbakeWasm", js.ValueOf(map[string]interface{}{
		"plan":            js.FuncOf(planWrapper),
		"selectorTable":   js.FuncOf(selectorTableWrapper),
		"decodeTelemetry": js.FuncOf(decodeTelemetryWrapper),
		"crc16":           js.FuncOf(crc16Wrapper),
		"version":         protocol.Version,
	}))

	// Keep the program running
	select {}
}

// planWrapper encodes a message
// Args: message (string), ditMs (number, optional)
// Returns: {units, durationMs, keying, unsupported, error}
func planWrapper(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing message argument"})
	}

	message := args[0].String()
	dit := core.DefaultTiming().DitMs
	if len(args) > 1 && args[1].Int() > 0 {
		dit = uint32(args[1].Int())
	}

	plan := core.Encode(message)
	return js.ValueOf(map[string]interface{}{
		"units":       int(plan.Units),
		"durationMs":  int(plan.DurationMs(dit)),
		"keying":      sim.RenderPlan(plan),
		"unsupported": string(core.UnsupportedCharacters(message)),
	})
}

// selectorTableWrapper lists the raw line pattern for every index
// Returns: [{index, raw}]
func selectorTableWrapper(this js.Value, args []js.Value) interface{} {
	rows := make([]interface{}, core.SelectorPositions)
	for idx := uint8(0); idx < core.SelectorPositions; idx++ {
		rows[idx] = map[string]interface{}{
			"index": int(idx),
			"raw":   int(core.EncodeSelector(idx)),
		}
	}
	return js.ValueOf(rows)
}

// decodeTelemetryWrapper decodes a chunk of the serial stream
// Args: hexString (string)
// Returns: {reports: [...], boot: {...}, consumed, crcErrors, error}
func decodeTelemetryWrapper(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing hex string argument"})
	}

	data, err := hex.DecodeString(args[0].String())
	if err != nil {
		return js.ValueOf(map[string]interface{}{"error": "invalid hex string: " + err.Error()})
	}

	result := map[string]interface{}{}
	reports := []interface{}{}

	decoder := protocol.NewFrameDecoder(func(seq uint8, payload []byte) {
		msg, err := core.DecodeMessage(payload)
		if err != nil {
			return
		}
		switch msg.ID {
		case protocol.MsgBoot:
			result["boot"] = bootObject(msg.Boot)
		case protocol.MsgCycleReport:
			reports = append(reports, reportObject(msg.Report))
		}
	})

	input := protocol.NewSliceInputBuffer(data)
	decoder.Receive(input)

	result["reports"] = reports
	// The page keeps unconsumed bytes and prepends them to the next chunk
	result["consumed"] = len(data) - input.Available()
	result["crcErrors"] = int(decoder.CRCErrors)
	return js.ValueOf(result)
}

// crc16Wrapper calculates CRC16 checksum
// Args: hexString (string)
// Returns: number (uint16)
func crc16Wrapper(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(0)
	}

	data, err := hex.DecodeString(args[0].String())
	if err != nil {
		return js.ValueOf(0)
	}
	return js.ValueOf(int(protocol.CRC16(data)))
}

func bootObject(info core.BootInfo) map[string]interface{} {
	return map[string]interface{}{
		"version":  info.Version,
		"ditMs":    int(info.Timing.DitMs),
		"periodMs": int(info.Timing.PeriodMs),
		"presets":  info.Presets,
		"sidetone": info.Sidetone,
	}
}

func reportObject(r core.CycleReport) map[string]interface{} {
	return map[string]interface{}{
		"cycle":     int(r.Cycle),
		"raw":       int(r.Raw),
		"index":     int(r.Index),
		"message":   r.Message,
		"elapsedMs": int(r.ElapsedMs),
		"idleMs":    int(r.IdleMs),
		"trailerMs": int(r.TrailerMs),
		"totalMs":   int(r.TotalMs),
		"overrun":   r.Overrun,
	}
}
