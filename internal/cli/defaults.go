package cli

import (
	"strconv"
	"strings"

	"github.com/vijay-prabhu/resumeats/internal/config"
)

func tomlList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = strconv.Quote(v)
	}
	return strings.Join(quoted, ", ")
}

func tomlProfiles() string {
	var b strings.Builder
	for _, p := range config.DefaultProfiles() {
		b.WriteString("\n[[profiles]]\n")
		b.WriteString("domain = " + strconv.Quote(p.Domain) + "\n")
		b.WriteString("keywords = [" + tomlList(p.Keywords) + "]\n")
	}
	return b.String()
}
