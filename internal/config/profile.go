// Package config loads conversion profiles for the uf2conv command.
//
// A profile is a YAML file holding the per-board settings that would
// otherwise be repeated on every command line:
//
//	target_addr: 0x10000000
//	family: RP2040
//	payload_size: 256
//	semver: 1.4.0
//	description: ACME Toaster mk3
//	page_size: 4096
//	device_type_id: 0xcafe
//	checksum: true
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/arloliu/uftwo/format"
	"gopkg.in/yaml.v3"
)

// Profile holds the encoder settings read from a profile file. The Has
// fields tell values left out of the file apart from zero values.
type Profile struct {
	TargetAddr    uint32
	HasTargetAddr bool
	Family        format.FamilyID
	HasFamily     bool
	PayloadSize   int
	Semver        string
	Description   string
	PageSize      uint32
	DeviceTypeID  uint32
	HasDeviceType bool
	Checksum      bool
}

// rawProfile is the on-disk YAML shape.
type rawProfile struct {
	TargetAddr   string `yaml:"target_addr"`
	Family       string `yaml:"family"`
	PayloadSize  int    `yaml:"payload_size"`
	Semver       string `yaml:"semver"`
	Description  string `yaml:"description"`
	PageSize     string `yaml:"page_size"`
	DeviceTypeID string `yaml:"device_type_id"`
	Checksum     bool   `yaml:"checksum"`
}

// LoadProfile reads and parses a profile file.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}

	return ParseProfile(data)
}

// ParseProfile parses profile YAML. Unknown keys are rejected so that a typo
// does not silently fall back to a default.
func ParseProfile(data []byte) (*Profile, error) {
	var raw rawProfile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse profile: %w", err)
	}

	p := &Profile{
		PayloadSize: raw.PayloadSize,
		Semver:      raw.Semver,
		Description: raw.Description,
		Checksum:    raw.Checksum,
	}

	if raw.TargetAddr != "" {
		addr, err := ParseAddr(raw.TargetAddr)
		if err != nil {
			return nil, fmt.Errorf("target_addr: %w", err)
		}
		p.TargetAddr, p.HasTargetAddr = addr, true
	}

	if raw.Family != "" {
		family, err := format.ParseFamilyID(raw.Family)
		if err != nil {
			return nil, fmt.Errorf("family: %w", err)
		}
		p.Family, p.HasFamily = family, true
	}

	if raw.PageSize != "" {
		size, err := ParseUint32(raw.PageSize)
		if err != nil {
			return nil, fmt.Errorf("page_size: %w", err)
		}
		p.PageSize = size
	}

	if raw.DeviceTypeID != "" {
		id, err := ParseUint32(raw.DeviceTypeID)
		if err != nil {
			return nil, fmt.Errorf("device_type_id: %w", err)
		}
		p.DeviceTypeID, p.HasDeviceType = id, true
	}

	if p.PayloadSize < 0 {
		return nil, fmt.Errorf("payload_size: must not be negative, got %d", p.PayloadSize)
	}

	return p, nil
}

// ParseAddr parses an address given in hex with a 0x prefix or in decimal.
// A leading zero does not switch to octal.
func ParseAddr(s string) (uint32, error) {
	s = strings.TrimSpace(s)

	digits, base := s, 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		digits, base = s[2:], 16
	}

	v, err := strconv.ParseUint(digits, base, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q: %w", s, err)
	}

	return uint32(v), nil
}

// ParseUint32 parses a decimal number, or a hex, octal or binary one with
// its 0x, 0o or 0b prefix.
func ParseUint32(s string) (uint32, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", s, err)
	}

	return uint32(v), nil
}
