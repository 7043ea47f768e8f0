package entd

// Source file names under <data_path>/entd_2008/.
const (
	FileIndividu    = "Q_individu.csv"
	FileTCMIndividu = "Q_tcm_individu.csv"
	FileMenage      = "Q_menage.csv"
	FileTCMMenage   = "Q_tcm_menage_0.csv"
	FileDeploc      = "K_deploc.csv"
	FileVoyage      = "K_voyage.csv"
	FileVoyageDet   = "K_voydepdet.csv"
)

// SurveyDir is the extract directory below the data path.
const SurveyDir = "entd_2008"

// FileSchema names a source file and the columns kept from it.
type FileSchema struct {
	Name    string
	Columns []string
}

// Schemas lists every source file in validation order.
var Schemas = []FileSchema{
	{Name: FileIndividu, Columns: []string{
		"IDENT_IND", "idENT_MEN", "RG", "V1_GPERMIS", "V1_ICARTABON", "V1_GPERMIS2R",
	}},
	{Name: FileTCMIndividu, Columns: []string{
		"AGE", "ETUDES", "IDENT_IND", "IDENT_MEN", "PONDV1", "CS24", "SEXE", "DEP", "SITUA",
	}},
	{Name: FileMenage, Columns: []string{
		"DEP", "idENT_MEN", "PONDV1", "RG", "V1_JNBVELOADT", "V1_JNBVEH", "V1_JNBMOTO", "V1_JNBCYCLO",
	}},
	{Name: FileTCMMenage, Columns: []string{
		"NPERS", "PONDV1", "TrancheRevenuMensuel", "DEP", "idENT_MEN", "RG",
	}},
	{Name: FileDeploc, Columns: []string{
		"IDENT_IND", "V2_MMOTIFDES", "V2_MMOTIFORI", "V2_TYPJOUR", "V2_MORIHDEP", "V2_MDESHARR",
		"V2_MDISTTOT", "IDENT_JOUR", "V2_MTP", "V2_MDESDEP", "V2_MORIDEP", "NDEP", "V2_MOBILREF", "PONDKI",
	}},
	{Name: FileVoyage, Columns: []string{
		"IDENT_VOY", "V2_DVO_DSV", "V2_OLDMOTPR", "V2_OLDMTPP", "DEP", "V2_OLDVDEP", "Nbdep",
		"V2_OLDDEBJ", "V2_OLDFINJ",
	}},
	{Name: FileVoyageDet, Columns: []string{
		"IDENT_IND", "IDENT_VOY", "POIDS_VOY13", "OLDI", "NBD", "V2_OLDKM", "V2_DVO_ODV",
		"V2_OLDDEJ", "V2_OLDDEH", "V2_OLDARJ", "V2_OLDARH", "V2_OLDMOT", "V2_OLDMT1S",
	}},
}

// SchemaFor returns the schema of a source file.
func SchemaFor(name string) (FileSchema, bool) {
	for _, s := range Schemas {
		if s.Name == name {
			return s, true
		}
	}
	return FileSchema{}, false
}
