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
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/eslsoft/expreal/internal/app"
	"github.com/eslsoft/expreal/internal/entity"
	"github.com/eslsoft/expreal/internal/repository"
)

// lexiconCmd groups the lexicon store commands.
var lexiconCmd = &cobra.Command{
	Use:   "lexicon",
	Short: "Manage the sqlite lexicon store",
}

var lexiconImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import the bundled lexicon, or a YAML lexicon file, into the store",
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		replace, _ := cmd.Flags().GetBool("replace")
		lang, err := languageFlag(cmd)
		if err != nil {
			return err
		}

		container, cleanup, err := app.InitializeLexicon()
		if err != nil {
			return fmt.Errorf("initialize: %w", err)
		}
		defer cleanup()

		var r io.Reader
		source := "bundled lexicon"
		if file != "" {
			f, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("open lexicon file: %w", err)
			}
			defer f.Close()
			r, source = f, file
		}

		n, err := container.Lexicons.Import(cmd.Context(), lang, r, replace)
		if err != nil {
			return err
		}
		container.Logger.WithFields(logrus.Fields{"language": lang.String(), "entries": n}).Infof("imported %s", source)
		return nil
	},
}

var lexiconExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the stored lexicon of a language as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		lang, err := languageFlag(cmd)
		if err != nil {
			return err
		}

		container, cleanup, err := app.InitializeLexicon()
		if err != nil {
			return fmt.Errorf("initialize: %w", err)
		}
		defer cleanup()

		w := cmd.OutOrStdout()
		if out != "" {
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create export file: %w", err)
			}
			defer f.Close()
			w = f
		}
		return container.Lexicons.Export(cmd.Context(), lang, w)
	},
}

var lexiconListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored lexicon entries",
	Example: `  expreal lexicon list --language fr --filter "category == 'PRONOUN' && has(features.REFLEXIVE)"
  expreal lexicon list --filter "base.startsWith('a')" --order-by "base desc"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		query := &repository.ListLexiconQuery{}
		query.Filter, _ = cmd.Flags().GetString("filter")
		query.OrderBy, _ = cmd.Flags().GetString("order-by")
		query.PageNo, _ = cmd.Flags().GetInt32("page")
		query.PageSize, _ = cmd.Flags().GetInt32("page-size")
		if cmd.Flags().Changed("language") {
			lang, err := languageFlag(cmd)
			if err != nil {
				return err
			}
			query.Language = lang
		}

		container, cleanup, err := app.InitializeLexicon()
		if err != nil {
			return fmt.Errorf("initialize: %w", err)
		}
		defer cleanup()

		entries, total, err := container.Lexicons.List(cmd.Context(), query)
		if err != nil {
			return err
		}
		renderEntries(cmd.OutOrStdout(), entries, total)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lexiconCmd)
	lexiconCmd.AddCommand(lexiconImportCmd, lexiconExportCmd, lexiconListCmd)

	lexiconCmd.PersistentFlags().String("language", "en", "lexicon language (en, fr, nl)")

	lexiconImportCmd.Flags().String("file", "", "YAML lexicon file (default: bundled lexicon)")
	lexiconImportCmd.Flags().Bool("replace", false, "remove the stored entries of the language first")

	lexiconExportCmd.Flags().String("out", "", "output file (default: stdout)")

	lexiconListCmd.Flags().String("filter", "", "CEL filter over language, id, base, category and features")
	lexiconListCmd.Flags().String("order-by", "", "order keys: position, base, category, id [asc|desc]")
	lexiconListCmd.Flags().Int32("page", 1, "page number")
	lexiconListCmd.Flags().Int32("page-size", 20, "page size")
}

func languageFlag(cmd *cobra.Command) (entity.Language, error) {
	code, _ := cmd.Flags().GetString("language")
	lang := entity.ParseLanguage(code)
	if lang == entity.LanguageUnspecified {
		return lang, fmt.Errorf("%w: %q", entity.ErrUnsupportedLanguage, code)
	}
	return lang, nil
}

func renderEntries(w io.Writer, entries []entity.LexiconEntry, total int64) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"Language", "ID", "Base", "Category", "Features", "Forms"})
	for _, e := range entries {
		tw.AppendRow(table.Row{e.Language.String(), e.ID, e.Base, e.Category, formatMap(e.Features), formatMap(e.Forms)})
	}
	tw.AppendFooter(table.Row{"", "", "", "", "Total", total})
	tw.Render()
}

// formatMap renders key=value pairs sorted by key.
func formatMap(m map[string]string) string {
	keys := lo.Keys(m)
	sort.Strings(keys)
	return strings.Join(lo.Map(keys, func(k string, _ int) string { return k + "=" + m[k] }), " ")
}
