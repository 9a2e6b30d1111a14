package validator

import (
	"net/mail"
	"strings"
)

// FieldError is a single failed check. Errors keep rule order so responses
// list failures in the order the route declared them.
type FieldError struct {
	Field string `json:"field,omitempty"`
	Msg   string `json:"msg"`
}

type Errors []FieldError

func (e Errors) HasErrors() bool {
	return len(e) > 0
}

// Rule is one declarative check against a named field value.
type Rule struct {
	Field string
	Msg   string
	Check func(value string) bool
}

// Run evaluates every rule against values and collects all failures.
// Validation is all-or-nothing: callers skip the handler on any failure.
func Run(values map[string]string, rules ...Rule) Errors {
	var errs Errors
	for _, rule := range rules {
		if !rule.Check(values[rule.Field]) {
			errs = append(errs, FieldError{Field: rule.Field, Msg: rule.Msg})
		}
	}
	return errs
}

func Required(field, msg string) Rule {
	return Rule{Field: field, Msg: msg, Check: func(v string) bool {
		return strings.TrimSpace(v) != ""
	}}
}

func Email(field, msg string) Rule {
	return Rule{Field: field, Msg: msg, Check: func(v string) bool {
		_, err := mail.ParseAddress(strings.TrimSpace(v))
		return err == nil
	}}
}

func MinLength(field string, min int, msg string) Rule {
	return Rule{Field: field, Msg: msg, Check: func(v string) bool {
		return len(v) >= min
	}}
}

// Custom attaches an arbitrary predicate to a field.
func Custom(field, msg string, check func(value string) bool) Rule {
	return Rule{Field: field, Msg: msg, Check: check}
}

func ValidateRegister(name, email, password string) Errors {
	return Run(
		map[string]string{"name": name, "email": email, "password": password},
		Required("name", "Name is required"),
		Email("email", "Please include a valid email"),
		MinLength("password", 6, "Please enter a password with 6 or more characters"),
	)
}

func ValidateLogin(email, password string) Errors {
	return Run(
		map[string]string{"email": email, "password": password},
		Email("email", "Please include a valid email"),
		Required("password", "Password is required"),
	)
}

func ValidatePost(text string) Errors {
	return Run(
		map[string]string{"text": text},
		Required("text", "Text is required"),
	)
}

func ValidateComment(text string) Errors {
	return Run(
		map[string]string{"text": text},
		Required("text", "Text is required"),
	)
}

func ValidateProfile(status, skills string) Errors {
	return Run(
		map[string]string{"status": status, "skills": skills},
		Required("status", "Status is required"),
		Required("skills", "Skills is required"),
	)
}

func ValidateExperience(title, company, from string) Errors {
	return Run(
		map[string]string{"title": title, "company": company, "from": from},
		Required("title", "Title is required"),
		Required("company", "Company is required"),
		Required("from", "From date is required"),
	)
}

func ValidateEducation(school, degree, fieldOfStudy, from string) Errors {
	return Run(
		map[string]string{"school": school, "degree": degree, "fieldofstudy": fieldOfStudy, "from": from},
		Required("school", "School is required"),
		Required("degree", "Degree is required"),
		Required("fieldofstudy", "Field of study is required"),
		Required("from", "From date is required"),
	)
}
