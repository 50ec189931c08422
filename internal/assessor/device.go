package assessor

import (
	"strings"
	"time"

	"riskd/internal/domain"
	"riskd/pkg/config"
)

// botSignatures are user-agent fragments of automation tooling. Matched
// case-insensitively as substrings.
var botSignatures = []string{"bot", "crawler", "spider", "curl", "wget", "python"}

// Device flags unfamiliar fingerprints and user agents seen against the
// account's trailing device window.
type Device struct {
	windowDays int
}

func NewDevice(cfg config.RiskConfig) *Device {
	return &Device{windowDays: cfg.DeviceWindowDays}
}

func (d *Device) Name() string { return "device" }

func (d *Device) Assess(tx domain.TransactionContext, snap domain.HistorySnapshot) Result {
	cutoff := snap.AsOf.Add(-time.Duration(d.windowDays) * 24 * time.Hour)

	knownFingerprints := make(map[string]bool)
	knownUserAgents := make(map[string]bool)
	for _, t := range snap.Transactions {
		if t.CreatedAt.Before(cutoff) {
			continue
		}
		if t.DeviceFingerprint != "" {
			knownFingerprints[t.DeviceFingerprint] = true
		}
		if t.UserAgent != "" {
			knownUserAgents[t.UserAgent] = true
		}
	}

	lowerUA := strings.ToLower(tx.UserAgent)

	return evaluate([]rule{
		{
			weight: 20,
			reason: "Transaction from new device",
			match: func() bool {
				return tx.DeviceFingerprint != "" && !knownFingerprints[tx.DeviceFingerprint]
			},
		},
		{
			weight: 15,
			reason: "Transaction from new browser/app",
			match: func() bool {
				return tx.UserAgent != "" && !knownUserAgents[tx.UserAgent]
			},
		},
		{
			weight: 25,
			reason: "Suspicious browser/device characteristics",
			match: func() bool {
				for _, sig := range botSignatures {
					if strings.Contains(lowerUA, sig) {
						return true
					}
				}
				return false
			},
		},
	})
}
