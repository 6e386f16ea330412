package internal

import (
	"testing"

	"github.com/kcmvp/archunit"
)

func TestArchitecture(t *testing.T) {
	domain := archunit.Packages("domain", []string{".../internal/domain/..."})
	ports := archunit.Packages("ports", []string{".../internal/ports"})
	inputs := archunit.Packages("inputs", []string{".../internal/adapters/input/..."})
	outputs := archunit.Packages("outputs", []string{".../internal/adapters/output/..."})
	adapters := archunit.Packages("adapters", []string{".../internal/adapters/..."})
	wiring := archunit.Packages("wiring", []string{".../internal/config", ".../internal/logging"})

	if err := domain.ShouldNotReferLayers(adapters); err != nil {
		t.Errorf("domain depends on adapters: %v", err)
	}
	if err := domain.ShouldNotReferLayers(wiring); err != nil {
		t.Errorf("domain depends on config or logging setup: %v", err)
	}
	if err := ports.ShouldNotReferLayers(adapters); err != nil {
		t.Errorf("ports depend on adapters: %v", err)
	}
	if err := inputs.ShouldNotReferLayers(outputs); err != nil {
		t.Errorf("inbound adapters depend on outbound adapters: %v", err)
	}
	if err := outputs.ShouldNotReferLayers(inputs); err != nil {
		t.Errorf("outbound adapters depend on inbound adapters: %v", err)
	}
}

func TestDomainPackages(t *testing.T) {
	for _, pkg := range []string{"alexa", "model", "service", "translator"} {
		layer := archunit.Packages(pkg, []string{".../internal/domain/" + pkg})
		if len(layer.Packages()) == 0 {
			t.Errorf("no %s package found in domain", pkg)
		}
	}
}
