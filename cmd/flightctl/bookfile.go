package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/Domenick1991/airbooking-client/internal/domain"
	"github.com/Domenick1991/airbooking-client/internal/form"
	"gopkg.in/yaml.v3"
)

// bookingFile is the YAML document read by "flightctl book":
//
//	outboundFlight: FL-1
//	returnFlight: FL-2
//	passengers:
//	  - firstName: Ada
//	    lastName: Lovelace
//	    ...
//	contact:
//	  email: ada@example.com
//	  phone: "+1 555 0100"
type bookingFile struct {
	OutboundFlight string             `yaml:"outboundFlight"`
	ReturnFlight   string             `yaml:"returnFlight"`
	Passengers     []domain.Passenger `yaml:"passengers"`
	Contact        domain.ContactInfo `yaml:"contact"`
}

func loadBookingFile(path string) (*bookingFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read booking file: %w", err)
	}
	var f bookingFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse booking file: %w", err)
	}
	f.OutboundFlight = strings.TrimSpace(f.OutboundFlight)
	f.ReturnFlight = strings.TrimSpace(f.ReturnFlight)
	return &f, nil
}

// Form returns the passenger form prefilled from the file.
func (f *bookingFile) Form() *form.Form {
	return form.New(form.FromDraft(f.Passengers, f.Contact))
}
