package cmd

import (
	"flag"
	"strings"

	"github.com/etnz/finctrl"
	"github.com/etnz/finctrl/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion returns the shell completion of the commands registered on c
// and of their flags.
func Completion(c *subcommands.Commander) *complete.Command {
	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: flagPredictors(flag.CommandLine),
	}
	c.VisitCommands(func(_ *subcommands.CommandGroup, sub subcommands.Command) {
		fs := flag.NewFlagSet(sub.Name(), flag.ContinueOnError)
		sub.SetFlags(fs)
		root.Sub[sub.Name()] = &complete.Command{
			Flags: flagPredictors(fs),
			Args:  argPredictor(sub.Name()),
		}
	})
	return root
}

// flagPredictors predicts the values of every flag of fs.
func flagPredictors(fs *flag.FlagSet) map[string]complete.Predictor {
	flags := map[string]complete.Predictor{}
	fs.VisitAll(func(f *flag.Flag) {
		flags[f.Name] = flagPredictor(f)
	})
	return flags
}

func flagPredictor(f *flag.Flag) complete.Predictor {
	if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
		return predict.Nothing
	}
	switch f.Name {
	case "db":
		return predict.Files("*.db")
	case "o":
		return predict.Files("*")
	case "k":
		kinds := make(predict.Set, len(finctrl.Kinds))
		for i, k := range finctrl.Kinds {
			kinds[i] = strings.ToLower(k.String())
		}
		return kinds
	default:
		return predict.Something
	}
}

func argPredictor(name string) complete.Predictor {
	switch name {
	case "import":
		return predict.Files("*.jsonl")
	case "topic":
		topics, err := docs.GetAllTopics()
		if err != nil {
			return predict.Nothing
		}
		return predict.Set(topics)
	default:
		return predict.Nothing
	}
}
