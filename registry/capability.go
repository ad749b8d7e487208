package registry

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/c360/openc2/data"
	"github.com/c360/openc2/errors"
	"github.com/c360/openc2/message"
)

// capabilitySchema constrains the shape of a capability declaration file
// before it is decoded. Semantic rules (identifier lengths, target type
// forms) are checked during decoding.
const capabilitySchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["capabilities"],
  "additionalProperties": false,
  "properties": {
    "capabilities": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["actions"],
        "additionalProperties": false,
        "properties": {
          "profile": {"type": "string"},
          "actions": {
            "type": "object",
            "minProperties": 1,
            "additionalProperties": {
              "type": "array",
              "minItems": 1,
              "items": {"type": "string"}
            }
          }
        }
      }
    }
  }
}`

// capabilityFile mirrors the YAML capability declaration:
//
//	capabilities:
//	  - profile: er
//	    actions:
//	      scan: [file, device]
//	      query: [features]
//
// An entry without a profile declares profile-agnostic capabilities.
type capabilityFile struct {
	Capabilities []capabilityEntry `yaml:"capabilities"`
}

type capabilityEntry struct {
	Profile string              `yaml:"profile"`
	Actions map[string][]string `yaml:"actions"`
}

// LoadCapabilities reads a YAML capability declaration and converts it into
// registration options for the declaring consumer. The document is checked
// against a schema before decoding so shape errors are reported with field
// locations.
func LoadCapabilities(r io.Reader) ([]RegistrationOption, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Custom(fmt.Sprintf("reading capability declaration: %s", err))
	}

	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, errors.CodecErr(err)
	}
	if err := validateCapabilityDoc(doc); err != nil {
		return nil, err
	}

	var file capabilityFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, errors.CodecErr(err)
	}
	return file.options()
}

// LoadCapabilitiesFile reads a capability declaration from disk.
func LoadCapabilitiesFile(path string) ([]RegistrationOption, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Custom(fmt.Sprintf("opening capability declaration: %s", err))
	}
	defer f.Close()
	return LoadCapabilities(f)
}

func validateCapabilityDoc(doc any) error {
	asJSON, err := json.Marshal(doc)
	if err != nil {
		return errors.CodecErr(err)
	}
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(capabilitySchema),
		gojsonschema.NewBytesLoader(asJSON),
	)
	if err != nil {
		return errors.CodecErr(err)
	}
	if !result.Valid() {
		acc := errors.NewAccumulator()
		for _, desc := range result.Errors() {
			acc.Push(errors.Validationf("%s: %s", desc.Field(), desc.Description()))
		}
		return acc.Finish()
	}
	return nil
}

func (f *capabilityFile) options() ([]RegistrationOption, error) {
	acc := errors.NewAccumulator()
	opts := make([]RegistrationOption, 0, len(f.Capabilities))
	for i, entry := range f.Capabilities {
		profile := noProfile
		if entry.Profile != "" {
			parsed, err := data.ParseNsid(entry.Profile)
			if !acc.Handle(errAt(err, errors.Index(i), errors.Key("capabilities"))) {
				continue
			}
			profile = parsed
		}

		targets := make(message.ActionTargets)
		for action, kinds := range entry.Actions {
			for _, kind := range kinds {
				tt, err := message.ParseTargetType(kind)
				if !acc.Handle(errAt(err, errors.Key(action), errors.Index(i), errors.Key("capabilities"))) {
					continue
				}
				targets.Add(message.Action(action), tt)
			}
		}
		opts = append(opts, WithActions(profile, targets))
	}
	if err := acc.Finish(); err != nil {
		return nil, err
	}
	return opts, nil
}

// errAt qualifies a non-nil error with path segments, innermost first.
func errAt(err error, segments ...errors.Segment) error {
	if err == nil {
		return nil
	}
	e := errors.From(err)
	for _, segment := range segments {
		e.At(segment)
	}
	return e
}
