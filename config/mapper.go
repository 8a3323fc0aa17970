package config

import (
	"github.com/Borislavv/go-jumpback-hash/internal/mapper"
	"github.com/Borislavv/go-jumpback-hash/prng"
)

type MapperCfg struct {
	// Algorithm is one of the mapper registry names, e.g. "jumpback", "jumphash", "classic".
	Algorithm mapper.Algorithm `yaml:"algorithm"`

	// Generator names the pseudo-random generator algorithms draw from. Only "splitmix64" for now.
	Generator prng.Name `yaml:"generator"`
}

func (cfg *MapperCfg) adjust() {
	if cfg.Algorithm == "" {
		cfg.Algorithm = mapper.AlgJumpBack
	}
	if cfg.Generator == "" {
		cfg.Generator = prng.NameSplitMix64
	}
}

func (cfg *MapperCfg) validate() error {
	if _, err := prng.New(cfg.Generator); err != nil {
		return err
	}
	return cfg.Algorithm.Validate()
}
