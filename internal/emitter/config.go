package emitter

import "fmt"

// Configuration error codes (E201-E209).
const (
	ErrInitialCellOutOfRange = "E201" // initial cell outside [0, mem_size)
	ErrUnsupportedCellWidth  = "E202" // cell width not 8/16/32/64
)

// Config carries the three runtime parameters substituted into the C
// template. The emitter treats it as read-only input: the values are
// validated for range, then passed through verbatim.
type Config struct {
	CellWidth   int `json:"cell_width" yaml:"cell_width"`     // cell width in bits: 8, 16, 32 or 64
	MemorySize  int `json:"mem_size" yaml:"mem_size"`         // number of cells on the tape
	InitialCell int `json:"initial_cell" yaml:"initial_cell"` // starting cursor index
}

// DefaultConfig is the classic 30000-cell byte tape with the cursor at
// cell zero.
func DefaultConfig() Config {
	return Config{CellWidth: 8, MemorySize: 30000, InitialCell: 0}
}

// ConfigError reports an emission configuration that cannot be substituted
// into the runtime template.
type ConfigError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Validate checks the config against the runtime template's contract:
// the cell type must map to a <stdint.h> typedef and the initial cursor
// must point inside the tape.
func (c Config) Validate() error {
	switch c.CellWidth {
	case 8, 16, 32, 64:
	default:
		return &ConfigError{
			Code:    ErrUnsupportedCellWidth,
			Message: fmt.Sprintf("unsupported cell width %d: must be 8, 16, 32 or 64", c.CellWidth),
		}
	}
	if c.MemorySize <= 0 {
		return &ConfigError{
			Code:    ErrInitialCellOutOfRange,
			Message: fmt.Sprintf("memory size %d: must be positive", c.MemorySize),
		}
	}
	if c.InitialCell < 0 || c.InitialCell >= c.MemorySize {
		return &ConfigError{
			Code:    ErrInitialCellOutOfRange,
			Message: fmt.Sprintf("initial cell %d outside [0, %d)", c.InitialCell, c.MemorySize),
		}
	}
	return nil
}
