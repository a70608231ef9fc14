package chainspec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// ExtensionsVersion is the extensions layout this package writes.
const ExtensionsVersion = 1

const (
	extVersionKey   = "version"
	extTelemetryKey = "telemetry"
)

// TelemetryEndpoint is a telemetry server and the most verbose message level it
// accepts. Nodes treat it as metadata only.
type TelemetryEndpoint struct {
	URL       string
	Verbosity uint8
}

// TelemetryEndpoints serializes as [["wss://...", 0], ...].
type TelemetryEndpoints []TelemetryEndpoint

func (e TelemetryEndpoint) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{e.URL, e.Verbosity})
}

func (e *TelemetryEndpoint) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("telemetry endpoint must be [url, verbosity], got %d items", len(pair))
	}
	if err := json.Unmarshal(pair[0], &e.URL); err != nil {
		return err
	}
	return json.Unmarshal(pair[1], &e.Verbosity)
}

// Extensions is the open-ended metadata record of a spec. Known fields are typed;
// fields written by newer versions are kept verbatim and written back unchanged.
type Extensions struct {
	Version   int
	Telemetry TelemetryEndpoints

	extra map[string]json.RawMessage
}

// Get returns the raw value of an extension field this package does not model.
func (e Extensions) Get(name string) (json.RawMessage, bool) {
	v, ok := e.extra[name]
	return v, ok
}

// Set stores an additional extension field.
func (e *Extensions) Set(name string, value interface{}) error {
	if name == extVersionKey || name == extTelemetryKey {
		return fmt.Errorf("extension %q is reserved", name)
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if e.extra == nil {
		e.extra = make(map[string]json.RawMessage)
	}
	e.extra[name] = raw
	return nil
}

// Names lists the additional extension fields in sorted order.
func (e Extensions) Names() []string {
	names := make([]string, 0, len(e.extra))
	for name := range e.extra {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (e Extensions) clone() Extensions {
	out := Extensions{Version: e.Version}
	if e.Telemetry != nil {
		out.Telemetry = append(TelemetryEndpoints{}, e.Telemetry...)
	}
	for name, raw := range e.extra {
		if out.extra == nil {
			out.extra = make(map[string]json.RawMessage, len(e.extra))
		}
		out.extra[name] = bytes.Clone(raw)
	}
	return out
}

func (e Extensions) MarshalJSON() ([]byte, error) {
	fields := make(map[string]interface{}, len(e.extra)+2)
	for name, raw := range e.extra {
		fields[name] = raw
	}

	version := e.Version
	if version < ExtensionsVersion {
		version = ExtensionsVersion
	}
	fields[extVersionKey] = version
	if e.Telemetry != nil {
		fields[extTelemetryKey] = e.Telemetry
	}
	return json.Marshal(fields)
}

func (e *Extensions) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*e = Extensions{}
	if raw, ok := fields[extVersionKey]; ok {
		if err := json.Unmarshal(raw, &e.Version); err != nil {
			return fmt.Errorf("extensions version: %w", err)
		}
		delete(fields, extVersionKey)
	}
	if raw, ok := fields[extTelemetryKey]; ok {
		if !bytes.Equal(raw, []byte("null")) {
			if err := json.Unmarshal(raw, &e.Telemetry); err != nil {
				return fmt.Errorf("extensions telemetry: %w", err)
			}
		}
		delete(fields, extTelemetryKey)
	}
	if len(fields) > 0 {
		e.extra = fields
	}
	return nil
}
