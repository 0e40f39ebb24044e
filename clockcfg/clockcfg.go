// Package clockcfg reads a board clock description from YAML and turns it
// into a clock.Tree.
//
// The document only describes shape. Whether the tree is legal (factor
// tables, SYSCLK limit, oscillator ranges) is decided by clock.Build, so a
// description and a tree assembled in code are checked by the same rules.
package clockcfg

import (
	"errors"
	"fmt"
	"go/token"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"clocktree-go/clock"
	"clocktree-go/freq"
)

// DefaultPackage names the generated package when the document does not.
const DefaultPackage = "board"

var (
	ErrSchema  = errors.New("clock description does not match schema")
	ErrMissing = errors.New("clock description is missing a section")
)

// Config is the YAML document.
type Config struct {
	Name    string `yaml:"name" validate:"required"`
	Package string `yaml:"package,omitempty" validate:"omitempty,goident"`

	SysClk SysClk `yaml:"sysclk"`
	HSI16  HSI16  `yaml:"hsi16,omitempty"`
	HSE    *HSE   `yaml:"hse,omitempty"`
	MSI    MSI    `yaml:"msi,omitempty"`
	PLL    *PLL   `yaml:"pll,omitempty"`

	AHB  uint32 `yaml:"ahb,omitempty"`
	APB1 uint32 `yaml:"apb1,omitempty"`
	APB2 uint32 `yaml:"apb2,omitempty"`

	// PollLimit bounds hardware waits: 0 selects the default bound and -1
	// waits forever.
	PollLimit int64 `yaml:"poll_limit,omitempty" validate:"gte=-1,lte=4294967294"`
}

type SysClk struct {
	Source string `yaml:"source" validate:"required,oneof=msi hsi16 hse pll"`
}

type HSI16 struct {
	Div4 bool `yaml:"div4"`
}

type HSE struct {
	Hz     uint64 `yaml:"hz" validate:"required"`
	Bypass bool   `yaml:"bypass"`
}

type MSI struct {
	// Range defaults to 5, the reset range.
	Range *uint8 `yaml:"range,omitempty"`
}

type PLL struct {
	Source string `yaml:"source" validate:"required,oneof=hsi16 hse"`
	Mul    uint32 `yaml:"mul" validate:"required"`
	Div    uint32 `yaml:"div" validate:"required"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("goident", func(fl validator.FieldLevel) bool {
		return token.IsIdentifier(fl.Field().String())
	})
}

// Load decodes and schema-checks one document. Unknown keys are rejected.
func Load(r io.Reader) (*Config, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var c Config
	if err := dec.Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrSchema)
		}
		return nil, fmt.Errorf("%w: %w", ErrSchema, err)
	}
	if err := validate.Struct(&c); err != nil {
		return nil, schemaError(err)
	}
	if c.Package == "" {
		c.Package = DefaultPackage
	}
	return &c, nil
}

// LoadFile is Load on the named file.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func schemaError(err error) error {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return fmt.Errorf("%w: %w", ErrSchema, err)
	}
	msgs := make([]string, 0, len(ves))
	for _, fe := range ves {
		msg := fe.Namespace() + ": " + fe.Tag()
		if fe.Param() != "" {
			msg += "=" + fe.Param()
		}
		msgs = append(msgs, msg)
	}
	return fmt.Errorf("%w: %s", ErrSchema, strings.Join(msgs, "; "))
}

// Tree converts the document into a clock tree. It does not validate the
// tree; pass the result to clock.Build.
func (c *Config) Tree() (clock.Tree, error) {
	sys, err := c.sysClkInput()
	if err != nil {
		return clock.Tree{}, err
	}
	t := clock.Tree{
		SysClk: clock.SysClk{Source: sys},
		AHB:    clock.AHBDiv(c.AHB),
		APB1:   clock.APBDiv(c.APB1),
		APB2:   clock.APBDiv(c.APB2),
	}
	if c.PollLimit < 0 {
		t.PollLimit = clock.PollForever
	} else {
		t.PollLimit = uint32(c.PollLimit)
	}
	return t, nil
}

func (c *Config) sysClkInput() (clock.SysClkInput, error) {
	switch c.SysClk.Source {
	case "msi":
		r := uint8(clock.MSIRange5)
		if c.MSI.Range != nil {
			r = *c.MSI.Range
		}
		return clock.MSI{Range: clock.MSIRange(r)}, nil
	case "hsi16":
		return c.hsi16(), nil
	case "hse":
		return c.hse()
	case "pll":
		if c.PLL == nil {
			return nil, fmt.Errorf("%w: sysclk source pll needs a pll section", ErrMissing)
		}
		var src clock.PLLInput
		switch c.PLL.Source {
		case "hse":
			hse, err := c.hse()
			if err != nil {
				return nil, err
			}
			src = hse
		default:
			src = c.hsi16()
		}
		return clock.PLL{Source: src, Mul: clock.PLLMul(c.PLL.Mul), Div: clock.PLLDiv(c.PLL.Div)}, nil
	}
	return nil, fmt.Errorf("%w: unknown sysclk source %q", ErrSchema, c.SysClk.Source)
}

func (c *Config) hsi16() clock.HSI16 { return clock.HSI16{DivideBy4: c.HSI16.Div4} }

func (c *Config) hse() (clock.HSE, error) {
	if c.HSE == nil {
		return clock.HSE{}, fmt.Errorf("%w: hse is used but has no hse section", ErrMissing)
	}
	return clock.HSE{Hz: freq.Of(c.HSE.Hz), Bypass: c.HSE.Bypass}, nil
}
