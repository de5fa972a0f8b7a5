package docscan

// Alias keys a query answer. The set of aliases is closed: unknown
// aliases returned by a provider are dropped on collection.
type Alias string

const (
	AliasDocumentID       Alias = "documentId"
	AliasDOB              Alias = "dob"
	AliasValidFrom        Alias = "validFrom"
	AliasExpiry           Alias = "expiry"
	AliasIssuingAuthority Alias = "issuingAuthority"
	AliasAddress          Alias = "address"
	AliasSurname          Alias = "surname"
	AliasFirstWithTitle   Alias = "firstWithTitle"
	AliasIssuingCountry   Alias = "issuingCountry"
)

// QueryLimit is the provider's cap on queries per analysis call; larger
// query sets are batched.
const QueryLimit = 10

// Answers holds the provider's best-effort answer per known alias. An
// empty field means the provider gave no direct answer. Keeping this a
// fixed struct (rather than an open map) forces every alias to be
// handled at compile time.
type Answers struct {
	DocumentID       string `json:"documentId,omitempty"`
	DOB              string `json:"dob,omitempty"`
	ValidFrom        string `json:"validFrom,omitempty"`
	Expiry           string `json:"expiry,omitempty"`
	IssuingAuthority string `json:"issuingAuthority,omitempty"`
	Address          string `json:"address,omitempty"`
	Surname          string `json:"surname,omitempty"`
	FirstWithTitle   string `json:"firstWithTitle,omitempty"`
	IssuingCountry   string `json:"issuingCountry,omitempty"`
}

func (a *Answers) set(alias Alias, text string) {
	if text == "" {
		return
	}
	switch alias {
	case AliasDocumentID:
		a.DocumentID = text
	case AliasDOB:
		a.DOB = text
	case AliasValidFrom:
		a.ValidFrom = text
	case AliasExpiry:
		a.Expiry = text
	case AliasIssuingAuthority:
		a.IssuingAuthority = text
	case AliasAddress:
		a.Address = text
	case AliasSurname:
		a.Surname = text
	case AliasFirstWithTitle:
		a.FirstWithTitle = text
	case AliasIssuingCountry:
		a.IssuingCountry = text
	}
}

// LicenceQueries target the numbered fields of a UK driving licence.
var LicenceQueries = []Query{
	{Text: "On a UK driving licence, what is the driving licence number (item 5)?", Alias: AliasDocumentID},
	{Text: "On a UK driving licence, what is the date of birth (item 3)?", Alias: AliasDOB},
	{Text: "On a UK driving licence, what is the date of issue (item 4a)?", Alias: AliasValidFrom},
	{Text: "On a UK driving licence, what is the date of expiry (item 4b)?", Alias: AliasExpiry},
	{Text: "On a UK driving licence, what is the issuing authority (item 4c)?", Alias: AliasIssuingAuthority},
	{Text: "On a UK driving licence, what is the address (item 8)?", Alias: AliasAddress},
	{Text: "On a UK driving licence, what is the surname (item 1)?", Alias: AliasSurname},
	{Text: "On a UK driving licence, what are the first names (item 2)? Include title if present.", Alias: AliasFirstWithTitle},
	{Text: "On a UK driving licence, what is the issuing country?", Alias: AliasIssuingCountry},
}

// PassportQueries target the data page of a passport.
var PassportQueries = []Query{
	{Text: "On the passport, what is the passport number?", Alias: AliasDocumentID},
	{Text: "On the passport, what is the date of birth?", Alias: AliasDOB},
	{Text: "On the passport, what is the date of expiry?", Alias: AliasExpiry},
	{Text: "On the passport, what is the issuing authority?", Alias: AliasIssuingAuthority},
	{Text: "On the passport, what is the issuing country?", Alias: AliasIssuingCountry},
	{Text: "On the passport, what is the surname?", Alias: AliasSurname},
	{Text: "On the passport, what are the given names?", Alias: AliasFirstWithTitle},
}
