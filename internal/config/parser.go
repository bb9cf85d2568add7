package config

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/hostbridge/hostbridge/internal/platform"
	lua "github.com/yuin/gopher-lua"
)

// Parser parses hostbridge Lua configs with platform detection.
type Parser struct {
	detector platform.Detector
	logger   Logger
}

// NewParser creates a config parser with the given platform detector.
func NewParser(detector platform.Detector) *Parser {
	return &Parser{
		detector: detector,
		logger:   defaultLogger(),
	}
}

// WithLogger sets the logger used during parsing.
func (p *Parser) WithLogger(logger Logger) *Parser {
	p.logger = logger
	return p
}

// Load reads the config file at path. A missing file yields the
// zero-value config, since the config is optional.
func (p *Parser) Load(ctx context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			p.logger.Debug("no config file", "path", path)
			return &Config{}, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return p.ParseString(ctx, string(data))
}

// ParseString parses a Lua config from a string.
func (p *Parser) ParseString(ctx context.Context, luaCode string) (*Config, error) {
	L := newSandboxedVM()
	defer L.Close()

	if p.detector != nil {
		platformInfo, err := p.detector.Detect(ctx)
		if err != nil {
			return nil, fmt.Errorf("platform detection failed: %w", err)
		}
		if err := platform.InjectPlatformTable(L, platformInfo); err != nil {
			return nil, fmt.Errorf("inject platform table: %w", err)
		}
	}

	if err := L.DoString(luaCode); err != nil {
		return nil, &ParseError{
			Message: "Lua syntax error",
			Detail:  err.Error(),
		}
	}

	return extractConfig(L)
}

// ParseError represents a config parsing error with a friendly message.
type ParseError struct {
	Message string // User-friendly message
	Detail  string // Technical details (raw Lua error)
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Message, e.Detail)
}

// extractConfig pulls the hostbridge table out of the Lua state.
func extractConfig(L *lua.LState) (*Config, error) {
	root := L.GetGlobal(luaGlobalHostbridge)
	if root.Type() != lua.LTTable {
		return nil, &ParseError{
			Message: "missing or invalid 'hostbridge' table",
			Detail:  fmt.Sprintf("expected table, got %s", root.Type()),
		}
	}

	config := &Config{}
	table := root.(*lua.LTable)

	if descVal := table.RawGetString(luaFieldDesc); descVal.Type() == lua.LTString {
		config.Description = descVal.String()
	}

	if originsVal := table.RawGetString(luaFieldOrigins); originsVal.Type() == lua.LTTable {
		config.AllowedOrigins = extractStringList(originsVal.(*lua.LTable))
	}

	if stagingVal := table.RawGetString(luaFieldStaging); stagingVal.Type() == lua.LTTable {
		staging, err := extractStaging(stagingVal.(*lua.LTable))
		if err != nil {
			return nil, err
		}
		config.Staging = staging
	}

	if keyringVal := table.RawGetString(luaFieldKeyring); keyringVal.Type() == lua.LTString {
		config.Keyring = keyringVal.String()
	}

	if err := config.Validate(); err != nil {
		return nil, &ParseError{
			Message: "config validation failed",
			Detail:  err.Error(),
		}
	}

	return config, nil
}

// extractStringList collects string entries from a Lua array table,
// skipping nils left behind by platform conditionals.
func extractStringList(table *lua.LTable) []string {
	var items []string
	table.ForEach(func(key, value lua.LValue) {
		if value.Type() != lua.LTString {
			return
		}
		items = append(items, value.String())
	})
	return items
}

// extractStaging extracts staging options from a Lua table.
func extractStaging(table *lua.LTable) (StagingOptions, error) {
	opts := StagingOptions{}

	if dirVal := table.RawGetString(luaFieldDir); dirVal.Type() == lua.LTString {
		opts.Dir = dirVal.String()
	}

	if retVal := table.RawGetString(luaFieldRetention); retVal.Type() == lua.LTString {
		d, err := time.ParseDuration(retVal.String())
		if err != nil {
			return opts, &ParseError{
				Message: "invalid staging retention",
				Detail:  err.Error(),
			}
		}
		opts.Retention = d
	}

	return opts, nil
}
