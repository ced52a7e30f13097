package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"lastmile/internal/core/domain/services"

	"gopkg.in/yaml.v3"
)

// DispatchSettings is the YAML form of the grouping and assignment rules.
// Omitted keys keep their defaults.
//
//	grouping:
//	  pickup_window: 10m
//	  cross_customer_pairing: true
//	  overlap_policy: keep_all
//	assignment:
//	  policy: per_batch
//	  max_batches_per_courier: 0
type DispatchSettings struct {
	Grouping struct {
		PickupWindow         *time.Duration `yaml:"pickup_window"`
		CrossCustomerPairing *bool          `yaml:"cross_customer_pairing"`
		OverlapPolicy        *string        `yaml:"overlap_policy"`
	} `yaml:"grouping"`
	Assignment struct {
		Policy               *string `yaml:"policy"`
		MaxBatchesPerCourier *int    `yaml:"max_batches_per_courier"`
	} `yaml:"assignment"`
}

// LoadDispatchSettings reads the settings file at path. An empty path yields the defaults.
func LoadDispatchSettings(path string) (services.GrouperConfig, services.AssignerConfig, error) {
	if path == "" {
		return services.DefaultGrouperConfig(), services.DefaultAssignerConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return services.GrouperConfig{}, services.AssignerConfig{}, fmt.Errorf("read dispatch settings: %w", err)
	}

	return ParseDispatchSettings(data)
}

// ParseDispatchSettings applies YAML settings on top of the defaults and validates the result.
// Unknown keys are rejected.
func ParseDispatchSettings(data []byte) (services.GrouperConfig, services.AssignerConfig, error) {
	grouping := services.DefaultGrouperConfig()
	assigning := services.DefaultAssignerConfig()

	var settings DispatchSettings
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&settings); err != nil && !errors.Is(err, io.EOF) {
		return grouping, assigning, fmt.Errorf("parse dispatch settings: %w", err)
	}

	if v := settings.Grouping.PickupWindow; v != nil {
		grouping.PickupWindow = *v
	}
	if v := settings.Grouping.CrossCustomerPairing; v != nil {
		grouping.CrossCustomerPairing = *v
	}
	if v := settings.Grouping.OverlapPolicy; v != nil {
		policy, err := services.ParseOverlapPolicy(*v)
		if err != nil {
			return grouping, assigning, err
		}
		grouping.OverlapPolicy = policy
	}

	if v := settings.Assignment.Policy; v != nil {
		policy, err := services.ParseAssignmentPolicy(*v)
		if err != nil {
			return grouping, assigning, err
		}
		assigning.Policy = policy
	}
	if v := settings.Assignment.MaxBatchesPerCourier; v != nil {
		assigning.MaxBatchesPerCourier = *v
	}

	if err := errors.Join(grouping.Validate(), assigning.Validate()); err != nil {
		return grouping, assigning, err
	}

	return grouping, assigning, nil
}
