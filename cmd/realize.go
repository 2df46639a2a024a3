/*
Copyright © 2025 Ambor <saltbo@foxmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eslsoft/expreal/internal/app"
	"github.com/eslsoft/expreal/internal/entity"
)

// realizeInput collects the realize flags.
type realizeInput struct {
	act      string
	text     string
	args     []string
	persons  []string
	props    []string
	tags     []string
	speaker  string
	listener string
}

// realizeCmd realizes one predicate, or a raw template with --text.
var realizeCmd = &cobra.Command{
	Use:   "realize",
	Short: "Realize a narrative act",
	Example: `  expreal realize --templates templates.csv --language fr \
    --person pete:m --person frank:m --speaker pete --listener frank \
    --act InformIntention --arg test=verbs`,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		in := realizeInput{}
		in.act, _ = flags.GetString("act")
		in.text, _ = flags.GetString("text")
		in.args, _ = flags.GetStringArray("arg")
		in.persons, _ = flags.GetStringArray("person")
		in.props, _ = flags.GetStringArray("prop")
		in.tags, _ = flags.GetStringArray("tag")
		in.speaker, _ = flags.GetString("speaker")
		in.listener, _ = flags.GetString("listener")
		if (in.act == "") == (in.text == "") {
			return errors.New("exactly one of --act or --text is required")
		}

		c, predArgs, err := buildContext(in)
		if err != nil {
			return err
		}

		container, err := app.Initialize()
		if err != nil {
			return fmt.Errorf("initialize: %w", err)
		}

		out := cmd.OutOrStdout()
		if in.text != "" {
			fmt.Fprintln(out, container.Realizer.Interpret(in.text, c))
			return nil
		}
		for _, text := range container.Realizer.GetTexts(entity.NewPredicate(in.act, predArgs...), c) {
			fmt.Fprintln(out, text)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(realizeCmd)
	flags := realizeCmd.Flags()
	flags.String("act", "", "predicate type, e.g. InformIntention")
	flags.String("text", "", "template text to interpret instead of an act")
	flags.StringArray("arg", nil, "predicate argument name=value (repeatable)")
	flags.StringArray("person", nil, "person id:gender[:EN,FR,NL names] (repeatable)")
	flags.StringArray("prop", nil, "person property id.name=value (repeatable)")
	flags.StringArray("tag", nil, "user-defined condition @key[=value] (repeatable)")
	flags.String("speaker", "", "speaker person id")
	flags.String("listener", "", "listener person id")
	flags.String("language", "", "target language (en, fr, nl)")
	flags.String("templates", "", "template sheet path")
	flags.Int64("seed", 0, "seed for choosing among equally specific templates")
	flags.String("lexicon-source", "", "lexicon source (embedded or sqlite)")

	bindFlagToViper("realizer.language", flags.Lookup("language"))
	bindFlagToViper("realizer.templates", flags.Lookup("templates"))
	bindFlagToViper("realizer.seed", flags.Lookup("seed"))
	bindFlagToViper("lexicon.source", flags.Lookup("lexicon-source"))
}

// buildContext turns the flags into a realization context and the
// predicate arguments.
func buildContext(in realizeInput) (*entity.Context, []entity.Argument, error) {
	c := entity.NewContext()
	for _, value := range in.persons {
		p, err := parsePerson(value)
		if err != nil {
			return nil, nil, err
		}
		c.AddPerson(p)
	}

	for _, value := range in.props {
		id, name, v, err := parseProperty(value)
		if err != nil {
			return nil, nil, err
		}
		p, ok := c.Person(id)
		if !ok {
			return nil, nil, fmt.Errorf("property %q: unknown person %q", value, id)
		}
		p.SetProperty(name, v)
	}

	for _, role := range []struct {
		id  string
		set func(*entity.Person)
	}{
		{in.speaker, c.SetSpeaker},
		{in.listener, c.SetListener},
	} {
		if role.id == "" {
			continue
		}
		p, ok := c.Person(role.id)
		if !ok {
			return nil, nil, fmt.Errorf("%q is not a declared person", role.id)
		}
		role.set(p)
	}

	for _, value := range in.tags {
		key, val, err := parseTag(value)
		if err != nil {
			return nil, nil, err
		}
		c.AddUserDefinedCondition(key, val)
	}

	args, err := parseArguments(in.args)
	if err != nil {
		return nil, nil, err
	}
	return c, args, nil
}
