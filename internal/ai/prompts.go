package ai

import "strings"

const (
	// Named placeholders substituted by BuildSOAPPrompt.
	DiagnosisPlaceholder   = "{diagnosis}"
	DescriptionPlaceholder = "{description}"
)

const (
	soapPromptTemplateID = `
Sebagai konselor adiksi di sebuah lembaga rehabilitasi, buatlah catatan konseling dengan format SOAP (Subjective, Objective, Assessment, Planning) untuk klien yang menghadapi isu konseling berikut: {diagnosis}.

Gunakan deskripsi klien berikut untuk membuat catatan yang lebih spesifik:
{description}

Berikan informasi yang relevan untuk setiap bagian (S, O, A, P). Pastikan format keluarannya jelas, dengan setiap bagian diawali dengan S:, O:, A:, dan P:.

S: Tulis keluhan subjektif atau pernyataan klien.
O: Tulis data objektif seperti observasi perilaku, interaksi, dan ekspresi emosi klien selama sesi.
A: Tulis asesmen atau diagnosis fungsional berdasarkan data S dan O.
P: Buatlah rencana intervensi konseling yang relevan dan langkah selanjutnya. Rencana ini harus mencakup beberapa poin, di mana setiap poin intervensi diikuti oleh penjelasan satu kalimat yang menunjukkan bagaimana poin tersebut memenuhi kriteria SMART (Specific, Measurable, Achievable, Relevant, Time-bound).

Format keluaran harus seperti contoh berikut:
S: [Teks subjektif klien]
O: [Teks objektif konselor]
A: [Teks asesmen konselor]
P: 
1. [Poin Intervensi 1]. (SMART: [Satu kalimat penjelasan SMART])
2. [Poin Intervensi 2]. (SMART: [Satu kalimat penjelasan SMART])
...
`

	soapPromptTemplateEN = `
As an addiction counselor at a rehabilitation facility, write a counseling note in SOAP format (Subjective, Objective, Assessment, Planning) for a client facing the following counseling issue: {diagnosis}.

Use the following client description to make the note more specific:
{description}

Provide relevant information for each section (S, O, A, P). Make sure the output is clearly formatted, with each section starting with S:, O:, A:, and P:.

S: Write the client's subjective complaints or statements.
O: Write objective data such as behavioral observations, interactions, and the client's emotional expression during the session.
A: Write the assessment or functional diagnosis based on the S and O data.
P: Write a relevant counseling intervention plan and next steps. The plan must include several points, where each intervention point is followed by a one-sentence explanation showing how it meets the SMART criteria (Specific, Measurable, Achievable, Relevant, Time-bound).

The output must follow this example:
S: [Client subjective text]
O: [Counselor objective text]
A: [Counselor assessment text]
P: 
1. [Intervention point 1]. (SMART: [One-sentence SMART explanation])
2. [Intervention point 2]. (SMART: [One-sentence SMART explanation])
...
`
)

// GetSOAPPromptTemplate returns the SOAP note template for the language.
// Indonesian is the default.
func GetSOAPPromptTemplate(lang string) string {
	switch lang {
	case "en":
		return soapPromptTemplateEN
	default:
		return soapPromptTemplateID
	}
}

// BuildSOAPPrompt substitutes the issue label and the client description into
// template in a single pass, so placeholder-like text inside the inputs is
// left untouched. It never fails and performs no validation.
func BuildSOAPPrompt(template, issue, description string) string {
	r := strings.NewReplacer(
		DiagnosisPlaceholder, issue,
		DescriptionPlaceholder, description,
	)
	return r.Replace(template)
}
