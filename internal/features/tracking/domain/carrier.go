package domain

import "strings"

// CarrierInfo identifies an ocean carrier.
type CarrierInfo struct {
	// Code is the carrier SCAC code, empty for the generic identity.
	Code string `json:"code"`
	// Name is the display name.
	Name string `json:"name"`
}

// GenericCarrier is returned for prefixes outside the directory.
var GenericCarrier = CarrierInfo{Code: "", Name: PlaceholderCarrier}

// carrierDirectory maps BIC owner prefixes to their operating carrier.
var carrierDirectory = map[string]CarrierInfo{
	"MEDU": {Code: "MSCU", Name: "MSC Mediterranean Shipping"},
	"MSCU": {Code: "MSCU", Name: "MSC Mediterranean Shipping"},
	"MSKU": {Code: "MAEU", Name: "Maersk Line"},
	"MAEU": {Code: "MAEU", Name: "Maersk Line"},
	"HLCU": {Code: "HLCU", Name: "Hapag-Lloyd"},
	"HLXU": {Code: "HLCU", Name: "Hapag-Lloyd"},
	"COSU": {Code: "COSU", Name: "COSCO Shipping"},
	"CBHU": {Code: "COSU", Name: "COSCO Shipping"},
	"ONEU": {Code: "ONEY", Name: "Ocean Network Express"},
	"CMAU": {Code: "CMDU", Name: "CMA CGM"},
	"EGLV": {Code: "EGLV", Name: "Evergreen Line"},
	"EISU": {Code: "EGLV", Name: "Evergreen Line"},
	"OOLU": {Code: "OOLU", Name: "OOCL"},
	"YMLU": {Code: "YMLU", Name: "Yang Ming"},
	"ZIMU": {Code: "ZIMU", Name: "ZIM"},
	"HDMU": {Code: "HDMU", Name: "HMM"},
}

// LookupCarrier resolves a container prefix to its carrier. Only the first four
// characters are considered; unknown prefixes yield GenericCarrier.
func LookupCarrier(prefix string) CarrierInfo {
	p := strings.ToUpper(strings.TrimSpace(prefix))
	if len(p) > 4 {
		p = p[:4]
	}
	if info, ok := carrierDirectory[p]; ok {
		return info
	}
	return GenericCarrier
}
