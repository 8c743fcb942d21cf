// Package counseling holds the closed catalogue of addiction counseling issues
// offered by the note forms.
package counseling

import (
	"strconv"
	"strings"
)

var issues = []string{
	"Nicotine Abuse/Depedence",
	"Substance-Induced Disorder",
	"Substance Intoxication/Withdrawal",
	"Substance Use Disorder",
	"Chronic Pain",
	"Medical Issue",
	"Adult Child Of An Alcoholic (ACA) Traits",
	"Anger",
	"Antisocial Behavior",
	"Anxiety",
	"ADHD Adolescent",
	"ADHD Adult",
	"Bipolar Disorder",
	"Borderline Traits",
	"Childhood Trauma",
	"Conduct Disorder/Delinquency",
	"Dangerousness/Lethality",
	"Dependent Traits",
	"Eating Disorder and Obesity",
	"Family Conflicts",
	"Gambling",
	"Grief/Loss Unresolved",
	"Impulsivity",
	"Legal Problems",
	"Narcissistic Traits",
	"OCD",
	"Oppositional Defiant Behavior",
	"Posttraumatic Stress Disorder (PTSD)",
	"Psychosis",
	"Self Care Deficits Primary",
	"Self Care Deficits Secondary",
	"Self Harm",
	"Sexual Abuse",
	"Sexual Promiscuity",
	"Sleep Disturbance",
	"Social Anxiety",
	"Spiritual Confusion",
	"Suicidal Ideation",
	"Unipolar Depression",
	"Treatment Resistance",
	"Relapse Proneness",
	"Living Environment Deficiency",
	"Occupational Problems",
	"Parent Child Relational Problem",
	"Partner Relational Conflicts",
	"Peer Group Negativity",
}

var index = func() map[string]string {
	m := make(map[string]string, len(issues))
	for _, issue := range issues {
		m[strings.ToLower(issue)] = issue
	}
	return m
}()

// Issues returns a copy of the catalogue in display order.
func Issues() []string {
	out := make([]string, len(issues))
	copy(out, issues)
	return out
}

// Count returns the number of issues in the catalogue.
func Count() int {
	return len(issues)
}

// IsValid reports whether label is exactly one of the catalogue entries.
func IsValid(label string) bool {
	for _, issue := range issues {
		if issue == label {
			return true
		}
	}
	return false
}

// Lookup resolves label case-insensitively and returns its canonical spelling.
func Lookup(label string) (string, bool) {
	issue, ok := index[strings.ToLower(strings.TrimSpace(label))]
	return issue, ok
}

// ByIndex returns the issue at the 1-based position used by numbered menus.
func ByIndex(position int) (string, bool) {
	if position < 1 || position > len(issues) {
		return "", false
	}
	return issues[position-1], true
}

// Resolve accepts either a menu number or a label and returns the canonical
// issue.
func Resolve(input string) (string, bool) {
	input = strings.TrimSpace(input)
	if n, err := strconv.Atoi(input); err == nil {
		return ByIndex(n)
	}
	return Lookup(input)
}
