package format

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/arloliu/uftwo/errs"
)

// Well-known board family identifiers.
const (
	FamilyATMEGA32    FamilyID = 0x16573617
	FamilyNRF52       FamilyID = 0x1b57745f
	FamilyLPC55       FamilyID = 0x2abc77ec
	FamilyMIMXRT10XX  FamilyID = 0x4fb2d5bd
	FamilySTM32F7     FamilyID = 0x53b80f00
	FamilySAMD51      FamilyID = 0x55114460
	FamilySTM32F4     FamilyID = 0x57755a57
	FamilySTM32F1     FamilyID = 0x5ee21072
	FamilySAMD21      FamilyID = 0x68ed2b88
	FamilySTM32F407   FamilyID = 0x6d0922fa
	FamilyKL32L2      FamilyID = 0x7f83e793
	FamilyNRF52840    FamilyID = 0xada52840
	FamilyESP32S2     FamilyID = 0xbfdd4eee
	FamilyESP32S3     FamilyID = 0xc47e5767
	FamilyESP32C3     FamilyID = 0xd42ba06c
	FamilyRP2040      FamilyID = 0xe48bff56
	FamilyRP2350ARMS  FamilyID = 0xe48bff59
	FamilyRP2350RISCV FamilyID = 0xe48bff5a
)

var familyNames = map[FamilyID]string{
	FamilyATMEGA32:    "ATMEGA32",
	FamilyNRF52:       "NRF52",
	FamilyLPC55:       "LPC55",
	FamilyMIMXRT10XX:  "MIMXRT10XX",
	FamilySTM32F7:     "STM32F7",
	FamilySAMD51:      "SAMD51",
	FamilySTM32F4:     "STM32F4",
	FamilySTM32F1:     "STM32F1",
	FamilySAMD21:      "SAMD21",
	FamilySTM32F407:   "STM32F407",
	FamilyKL32L2:      "KL32L2",
	FamilyNRF52840:    "NRF52840",
	FamilyESP32S2:     "ESP32S2",
	FamilyESP32S3:     "ESP32S3",
	FamilyESP32C3:     "ESP32C3",
	FamilyRP2040:      "RP2040",
	FamilyRP2350ARMS:  "RP2350_ARM_S",
	FamilyRP2350RISCV: "RP2350_RISCV",
}

var familyByName = func() map[string]FamilyID {
	m := make(map[string]FamilyID, len(familyNames))
	for id, name := range familyNames {
		m[name] = id
	}

	return m
}()

// Name returns the well-known name of the family and whether it is known.
func (f FamilyID) Name() (string, bool) {
	name, ok := familyNames[f]
	return name, ok
}

func (f FamilyID) String() string {
	if name, ok := familyNames[f]; ok {
		return name
	}

	return fmt.Sprintf("0x%08x", uint32(f))
}

// KnownFamilies returns the names of all well-known families, sorted.
func KnownFamilies() []string {
	names := make([]string, 0, len(familyByName))
	for name := range familyByName {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// ParseFamilyID parses a family identifier given either as a well-known name
// (case-insensitive) or as a number with an optional 0x prefix.
func ParseFamilyID(s string) (FamilyID, error) {
	s = strings.TrimSpace(s)
	if id, ok := familyByName[strings.ToUpper(s)]; ok {
		return id, nil
	}

	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errs.ErrUnknownFamily, s)
	}

	return FamilyID(v), nil
}
