package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// RenewalFee is the fee charged per renewal cycle for one license type.
type RenewalFee struct {
	LicenseType string `mapstructure:"licenseType"`
	Amount      int64  `mapstructure:"amount"`
	Currency    string `mapstructure:"currency"`
}

// RegistryRules carries the operational rules that change without a release:
// fee schedule, reminder lead time, and the annual CPD requirement.
type RegistryRules struct {
	RenewalFees      []RenewalFee `mapstructure:"renewalFees"`
	ReminderLeadDays int          `mapstructure:"reminderLeadDays"`
	CPDMinimumPoints int          `mapstructure:"cpdMinimumPoints"`
}

func DefaultRegistryRules() RegistryRules {
	return RegistryRules{
		RenewalFees: []RenewalFee{
			{LicenseType: "practitioner", Amount: 35000, Currency: "GHS"},
			{LicenseType: "facility", Amount: 120000, Currency: "GHS"},
			{LicenseType: "candidate", Amount: 15000, Currency: "GHS"},
		},
		ReminderLeadDays: 30,
		CPDMinimumPoints: 15,
	}
}

// FeeFor returns the renewal fee for a license type, or false when the
// schedule has no entry for it.
func (r RegistryRules) FeeFor(licenseType string) (RenewalFee, bool) {
	for _, fee := range r.RenewalFees {
		if strings.EqualFold(fee.LicenseType, licenseType) {
			return fee, true
		}
	}
	return RenewalFee{}, false
}

type RegistryRulesHolder struct {
	current atomic.Value // holds RegistryRules
}

func NewRegistryRulesHolder() (*RegistryRulesHolder, error) {
	v := viper.New()

	v.SetConfigName("registry")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/registry/config")
	v.AddConfigPath("/etc/registry")
	v.AddConfigPath(".")

	v.SetEnvPrefix("REGISTRY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		// if config file not found, use defaults
		defaults := DefaultRegistryRules()
		v.SetDefault("rules.renewalFees", defaults.RenewalFees)
		v.SetDefault("rules.reminderLeadDays", defaults.ReminderLeadDays)
		v.SetDefault("rules.cpdMinimumPoints", defaults.CPDMinimumPoints)
	}

	var rules RegistryRules
	if err := v.UnmarshalKey("rules", &rules); err != nil {
		return nil, err
	}
	if err := validateRegistryRules(rules); err != nil {
		return nil, err
	}

	holder := &RegistryRulesHolder{}
	holder.current.Store(rules)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated RegistryRules
		if err := v.UnmarshalKey("rules", &updated); err != nil {
			log.Printf("[registry-rules] reload failed: %v", err)
			return
		}
		if err := validateRegistryRules(updated); err != nil {
			log.Printf("[registry-rules] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[registry-rules] reloaded from %s", e.Name)
	})

	return holder, nil
}

func (h *RegistryRulesHolder) Get() RegistryRules {
	return h.current.Load().(RegistryRules)
}

// NewStaticRegistryRulesHolder builds a holder around a fixed rule set with
// no file watching. Used by tests and one-shot tooling.
func NewStaticRegistryRulesHolder(rules RegistryRules) *RegistryRulesHolder {
	holder := &RegistryRulesHolder{}
	holder.current.Store(rules)
	return holder
}

func validateRegistryRules(rules RegistryRules) error {
	if len(rules.RenewalFees) == 0 {
		return errors.New("rules.renewalFees cannot be empty")
	}
	if rules.ReminderLeadDays < 0 {
		return errors.New("rules.reminderLeadDays cannot be negative")
	}
	if rules.CPDMinimumPoints < 0 {
		return errors.New("rules.cpdMinimumPoints cannot be negative")
	}
	return nil
}
