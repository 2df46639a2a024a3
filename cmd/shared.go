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
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/eslsoft/expreal/internal/entity"
)

func bindFlagToViper(key string, flag *pflag.Flag) {
	if flag == nil {
		return
	}
	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// parseArguments reads name=value pairs.
func parseArguments(values []string) ([]entity.Argument, error) {
	args := make([]entity.Argument, 0, len(values))
	for _, value := range values {
		name, val, ok := strings.Cut(value, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("argument %q: expected name=value", value)
		}
		args = append(args, entity.NewArgument(name, strings.TrimSpace(val)))
	}
	return args, nil
}

// parsePerson reads id:gender with optional realised names in language
// order, as in paul:m or bob:m:Bob,Robert,Bob.
func parsePerson(value string) (*entity.Person, error) {
	parts := strings.SplitN(value, ":", 3)
	id := strings.TrimSpace(parts[0])
	if id == "" {
		return nil, fmt.Errorf("person %q: empty id", value)
	}
	gender := entity.GenderUnspecified
	if len(parts) > 1 {
		gender = entity.ParseGender(parts[1])
		if gender == entity.GenderUnspecified && strings.TrimSpace(parts[1]) != "" {
			return nil, fmt.Errorf("person %q: unknown gender %q", value, parts[1])
		}
	}
	p := entity.NewPerson(id, gender)
	if len(parts) == 3 {
		names := lo.Map(strings.Split(parts[2], ","), func(s string, _ int) string { return strings.TrimSpace(s) })
		if len(names) > len(entity.Languages) {
			return nil, fmt.Errorf("person %q: at most %d realised names", value, len(entity.Languages))
		}
		p.WithRealisedNames(names...)
	}
	return p, nil
}

// parseProperty reads id.property=value, as in john.contentedness=0.8.
func parseProperty(value string) (id, name string, v float32, err error) {
	key, raw, ok := strings.Cut(value, "=")
	if !ok {
		return "", "", 0, fmt.Errorf("property %q: expected id.name=value", value)
	}
	id, name, ok = strings.Cut(strings.TrimSpace(key), ".")
	if !ok || id == "" || name == "" {
		return "", "", 0, fmt.Errorf("property %q: expected id.name=value", value)
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 32)
	if err != nil {
		return "", "", 0, fmt.Errorf("property %q: %w", value, err)
	}
	return id, name, float32(f), nil
}

// parseTag reads @key or @key=value.
func parseTag(value string) (key, val string, err error) {
	key, val, _ = strings.Cut(strings.TrimSpace(value), "=")
	if !strings.HasPrefix(key, "@") || len(key) < 2 {
		return "", "", fmt.Errorf("tag %q must start with @", value)
	}
	return key, val, nil
}
