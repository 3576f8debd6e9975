package matcher

// Outcome message templates. Operators read these in French, the language of
// the registry's own column names.
const (
	msgAffixFound    = "L'affixe : (%s) existe déjà dans la base de données sous le nom : (%s)"
	msgAffixNotFound = "L'affixe : (%s) n'existe pas dans la base de données."
	msgAffixAbsent   = "Aucun affixe renseigné pour le chien (%s), ligne %d."

	msgChipShort = "Une puce avec un nombre de chiffres de : %d a été détectée. " +
		"Veuillez vérifier le pays d'origine de l'animal avec la Puce : %s. " +
		"Nom Usuel correspondant : %s. Numéro de ligne dans le formulaire : %d"

	msgExists   = "%s (%s) existe déjà dans la base de données."
	msgNotFound = "%s (%s) n'existe pas dans la base de données."
	msgSwapped  = "Attention : Les noms et prénoms pour %s (%s) semblent inversés dans la base de données."
	msgNear     = "%s (%s) existe déjà dans la base de données avec une légère différence dans l'orthographe. " +
		"Valeur exacte dans la base de données : %s (similarité : %d)."

	msgDogExact      = "Le chien (%s) existe déjà dans la base de données avec la même date de naissance et la même puce."
	msgDogDateFormat = "Le chien (%s) existe déjà dans la base de données avec la même puce et le même jour de naissance, " +
		"mais la date est écrite différemment : (%s) dans le formulaire, (%s) dans la base de données."
	msgDogNotFound = "Le chien (%s) n'existe pas dans la base de données."
	msgDogBadDate  = "La date de naissance (%s) du chien (%s) est illisible, ligne %d : vérification du chien ignorée."

	dogLabel = "Le chien"
)
