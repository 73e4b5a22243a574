package pii

import "regexp"

// categoryPattern binds one regular-expression family to its category,
// default severity and human-readable description. The table is ordered;
// name categories are handled separately because their matches depend on
// surrounding context.
type categoryPattern struct {
	category    Category
	re          *regexp.Regexp
	severity    Severity
	description string
}

var (
	emailRe = regexp.MustCompile(`\b[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}\b`)

	phoneRe = regexp.MustCompile(`(?:\+?\d{1,3}[-.\s]?)?\b\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}\b`)

	employeeIDRe = regexp.MustCompile(`(?i)\b(?:EMP|ID|STAFF|OFFICE)[-:]?\s?\d{2,}[A-Z0-9]*\b`)

	ssnRe = regexp.MustCompile(`\b\d{3}[-.\s]?\d{2}[-.\s]?\d{4}\b`)

	creditCardRe = regexp.MustCompile(`\b\d{4}[-\s]?\d{4}[-\s]?\d{4}[-\s]?\d{4}\b`)

	ipAddressRe = regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`)

	urlRe = regexp.MustCompile(`https?://[^\s<>"']+`)

	// Cue phrases are matched case-insensitively; the captured name itself
	// must be capitalized.
	possibleNameRe = regexp.MustCompile(`\b(?i:my name is|i am|i'm|this is|mr\.?|mrs\.?|ms\.?|dr\.?|my manager(?: is)?,?)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+){0,2})`)

	standaloneNameRe = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+){1,2}\b`)

	specificDateRe = regexp.MustCompile(`(?i)\b(?:joined|hired|started|since|employed)\b[^.!?\n]{0,20}?\b((?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|jul(?:y)?|aug(?:ust)?|sep(?:tember)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\.?\s+\d{1,2}(?:st|nd|rd|th)?,?\s+\d{4}|\d{1,2}[/\-]\d{1,2}[/\-]\d{2,4})`)

	addressRe = regexp.MustCompile(`\b\d{1,5}\s+(?:[A-Z][a-z]+\s+){1,2}(?:Street|St|Avenue|Ave|Road|Rd|Boulevard|Blvd|Lane|Ln|Drive|Dr|Court|Ct|Place|Pl|Way)\.?\b(?:,\s*[A-Za-z .]+,\s*[A-Z]{2}\s*\d{5}(?:-\d{4})?)?`)
)

// simplePatterns are the categories whose matches need no contextual
// suppression. CreditCard candidates additionally pass Luhn validation
// before being reported.
var simplePatterns = []categoryPattern{
	{CategoryEmail, emailRe, SeverityHigh, "Email address"},
	{CategoryPhone, phoneRe, SeverityHigh, "Phone number"},
	{CategoryEmployeeID, employeeIDRe, SeverityHigh, "Employee or staff identifier"},
	{CategorySSN, ssnRe, SeverityHigh, "Social security number"},
	{CategoryCreditCard, creditCardRe, SeverityMedium, "Credit card number"},
	{CategoryIPAddress, ipAddressRe, SeverityMedium, "IP address"},
	{CategoryURL, urlRe, SeverityLow, "URL"},
	{CategoryAddress, addressRe, SeverityHigh, "Street address"},
}
