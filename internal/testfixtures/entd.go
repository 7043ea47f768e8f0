// Package testfixtures writes small ENTD extracts for tests.
package testfixtures

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

// Household and person identifiers used by the default extract.
const (
	HouseholdCouple   = "100"
	HouseholdSenior   = "200"
	PersonAdult       = "10001"
	PersonChild       = "10002"
	PersonSenior      = "20001"
	PersonOrphan      = "99901"
	VacationRoundTrip = "V1"
	VacationCorrupt   = "V2"
	VacationNight     = "V3"
	VacationOrphan    = "V4"
)

// ENTDFiles returns the default extract keyed by file name. Every file
// carries an EXTRA column that the loader must drop.
//
//   - V1: adult, two trips listed out of order (OLDI 2 then 1)
//   - V2: senior, arrival missing, pruned
//   - V3: child, car passenger, arrival past midnight
//   - V4: person absent from the person tables
func ENTDFiles() map[string]string {
	return map[string]string{
		"Q_menage.csv": lines(
			"DEP;idENT_MEN;PONDV1;RG;V1_JNBVELOADT;V1_JNBVEH;V1_JNBMOTO;V1_JNBCYCLO;EXTRA",
			"75;100;1200,5;1;2;1;1;;x",
			"69;200;800;2;;1;;;x",
		),
		"Q_tcm_menage_0.csv": lines(
			"NPERS;PONDV1;TrancheRevenuMensuel;DEP;idENT_MEN;RG;EXTRA",
			"2;1200,5;De 1 000 à moins de 1 200 euros;75;100;1;x",
			"2;800;Moins de 400 euros;;200;2;x",
		),
		"Q_individu.csv": lines(
			"IDENT_IND;idENT_MEN;RG;V1_GPERMIS;V1_ICARTABON;V1_GPERMIS2R;EXTRA",
			"10001;100;1;1;2;2;x",
			"10002;100;1;2;1;2;x",
			"20001;200;2;2;2;1;x",
		),
		"Q_tcm_individu.csv": lines(
			"AGE;ETUDES;IDENT_IND;IDENT_MEN;PONDV1;CS24;SEXE;DEP;SITUA;EXTRA",
			"40;2;10001;100;1300;46;1;75;1;x",
			"10;;10002;100;1300;;2;75;4;x",
			"70;2;20001;200;900;71;2;69;5;x",
			"33;2;99901;999;500;52;1;13;1;x",
		),
		"K_deploc.csv": lines(
			"IDENT_IND;V2_MMOTIFDES;V2_MMOTIFORI;V2_TYPJOUR;V2_MORIHDEP;V2_MDESHARR;V2_MDISTTOT;IDENT_JOUR;V2_MTP;V2_MDESDEP;V2_MORIDEP;NDEP;V2_MOBILREF;PONDKI;EXTRA",
			"10001;2.1;1.1;1;08:00:00;08:20:00;5,2;1;3.1;75;75;2;1;1100;x",
		),
		"K_voyage.csv": lines(
			"IDENT_VOY;V2_DVO_DSV;V2_OLDMOTPR;V2_OLDMTPP;DEP;V2_OLDVDEP;Nbdep;V2_OLDDEBJ;V2_OLDFINJ;EXTRA",
			"V1;390;7.1;3.1;75;69;2;05/06/2008;07/06/2008;x",
			"V2;120;5.1;6.1;69;;1;10/07/2008;12/07/2008;x",
			"V3;60;5.2;3.32;75;28;1;01/08/2008;02/08/2008;x",
			"V4;10;9.1;7.1;13;75;1;03/03/2008;03/03/2008;x",
		),
		"K_voydepdet.csv": lines(
			"IDENT_IND;IDENT_VOY;POIDS_VOY13;OLDI;NBD;V2_OLDKM;V2_DVO_ODV;V2_OLDDEJ;V2_OLDDEH;V2_OLDARJ;V2_OLDARH;V2_OLDMOT;V2_OLDMT1S;EXTRA",
			"10001;V1;1,5;2;2;460;390;07/06/2008;10:00:00;07/06/2008;14:30:00;1.1;3.1;x",
			"10001;V1;1,5;1;2;450,5;390;05/06/2008;08:00:00;05/06/2008;12:00:00;7.1;3.1;x",
			"20001;V2;2;1;1;150;120;10/07/2008;09:00:00;;;5.1;6.1;x",
			"10002;V3;0,8;1;1;70;60;01/08/2008;23:00:00;01/08/2008;25:10:00;5.2;3.32;x",
			"99901;V4;1;1;1;12;10;03/03/2008;09:00:00;03/03/2008;10:00:00;9.1;7.1;x",
		),
	}
}

func lines(rows ...string) string {
	return strings.Join(rows, "\n") + "\n"
}

// WriteENTD writes files Latin-1 encoded under <dataPath>/entd_2008.
func WriteENTD(t testing.TB, dataPath string, files map[string]string) {
	t.Helper()
	dir := filepath.Join(dataPath, "entd_2008")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for name, content := range files {
		encoded, err := charmap.ISO8859_1.NewEncoder().String(content)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(encoded), 0o644))
	}
}

// WriteDefaultENTD writes ENTDFiles into a fresh temp dir and returns the
// data path.
func WriteDefaultENTD(t testing.TB) string {
	t.Helper()
	dataPath := t.TempDir()
	WriteENTD(t, dataPath, ENTDFiles())
	return dataPath
}

// WriteFile writes a UTF-8 file, creating parent directories.
func WriteFile(t testing.TB, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
