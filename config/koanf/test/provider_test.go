package test

import (
	"testing"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/file"
	"github.com/miruken-go/mapper/config"
	koanfp "github.com/miruken-go/mapper/config/koanf"
	"github.com/stretchr/testify/suite"
)

type (
	MapperConfig struct {
		Verbosity int
		FailFast  bool
		Ignore    []string
	}

	// Switch records the text it was decoded from.
	Switch string

	SwitchConfig struct {
		FailFast Switch `path:"failFast"`
	}

	FlatConfig struct {
		Verbosity int      `path:"mapper.verbosity"`
		Ignore    []string `path:"mapper.ignore"`
	}
)

func (s *Switch) UnmarshalText(text []byte) error {
	*s = Switch("switch:" + string(text))
	return nil
}

type ProviderTestSuite struct {
	suite.Suite
	provider config.Provider
}

func (suite *ProviderTestSuite) SetupTest() {
	var k = koanf.New(".")
	err := k.Load(file.Provider("../../../test/configs/mapper.json"), json.Parser())
	suite.Nil(err)
	suite.provider = koanfp.P(k)
}

func (suite *ProviderTestSuite) TestProvider() {
	suite.Run("Path", func() {
		var cfg MapperConfig
		err := suite.provider.Unmarshal("mapper", false, &cfg)
		suite.Nil(err)
		suite.Equal(1, cfg.Verbosity)
		suite.True(cfg.FailFast)
		suite.Equal([]string{"password", "token"}, cfg.Ignore)
	})

	suite.Run("Flat", func() {
		var cfg FlatConfig
		err := suite.provider.Unmarshal("", true, &cfg)
		suite.Nil(err)
		suite.Equal(1, cfg.Verbosity)
		suite.Equal([]string{"password", "token"}, cfg.Ignore)
	})

	suite.Run("Map", func() {
		var cfg map[string]any
		err := suite.provider.Unmarshal("invalid", false, &cfg)
		suite.Nil(err)
		suite.EqualValues(-1, cfg["verbosity"])
	})

	suite.Run("BoolToText", func() {
		var cfg SwitchConfig
		err := suite.provider.Unmarshal("mapper", false, &cfg)
		suite.Nil(err)
		suite.Equal(Switch("switch:true"), cfg.FailFast)
	})

	suite.Run("Load", func() {
		var cfg MapperConfig
		suite.Nil(config.Load(suite.provider, "mapper", false, &cfg))
		suite.True(cfg.FailFast)
	})

	suite.Run("NilKoanf", func() {
		suite.Panics(func() {
			koanfp.P(nil)
		})
	})
}

func (suite *ProviderTestSuite) TestSlices() {
	suite.Run("Nothing", func() {
		m := map[string]any{
			"Name": "John",
		}
		s, ok := koanfp.ConvertSlices(m)
		suite.False(ok)
		suite.Nil(s)
	})

	suite.Run("Empty", func() {
		s, ok := koanfp.ConvertSlices(map[string]any{})
		suite.False(ok)
		suite.Nil(s)
	})

	suite.Run("Simple", func() {
		m := map[string]any{
			"0": "password",
			"2": "secret",
			"1": "token",
		}
		s, ok := koanfp.ConvertSlices(m)
		suite.True(ok)
		suite.Equal([]any{"password", "token", "secret"}, s)
	})

	suite.Run("Sparse", func() {
		m := map[string]any{
			"3": "token",
			"1": "password",
		}
		s, ok := koanfp.ConvertSlices(m)
		suite.True(ok)
		suite.Equal([]any{nil, "password", nil, "token"}, s)
	})

	suite.Run("Mixed", func() {
		m := map[string]any{
			"0":    "password",
			"Name": "John",
		}
		s, ok := koanfp.ConvertSlices(m)
		suite.False(ok)
		suite.Nil(s)
	})

	suite.Run("Nested", func() {
		m := map[string]any{
			"Mapper": map[string]any{
				"Verbosity": "2",
				"Ignore": map[string]any{
					"0": "password",
					"1": "token",
				},
			},
		}
		s, ok := koanfp.ConvertSlices(m)
		suite.False(ok)
		suite.Nil(s)
		suite.Equal([]any{"password", "token"},
			m["Mapper"].(map[string]any)["Ignore"])
	})

	suite.Run("Merge", func() {
		src := map[string]any{
			"Ignore": map[string]any{"0": "password"},
		}
		dest := map[string]any{"Verbosity": 1}
		suite.Nil(koanfp.Merge(src, dest))
		suite.Equal([]any{"password"}, dest["Ignore"])
		suite.Equal(1, dest["Verbosity"])
	})
}

func TestProviderTestSuite(t *testing.T) {
	suite.Run(t, new(ProviderTestSuite))
}
