package command

import (
	"strconv"

	"github.com/spf13/pflag"

	"github.com/edp1096/toy-xfmr/pkg/util"
)

// siFloat is a float64 flag that also accepts SI prefixes, so
// --high-voltage 13.2k and --sc-current 757m both work.
type siFloat struct {
	p *float64
}

func (f *siFloat) String() string {
	if f.p == nil {
		return "0"
	}
	return strconv.FormatFloat(*f.p, 'g', -1, 64)
}

func (f *siFloat) Set(s string) error {
	v, err := util.ParseValue(s)
	if err != nil {
		return err
	}
	*f.p = v
	return nil
}

func (f *siFloat) Type() string { return "value" }

func siVar(fs *pflag.FlagSet, p *float64, name string, value float64, usage string) {
	*p = value
	fs.Var(&siFloat{p}, name, usage)
}
