/*
Package entd reads the raw ENTD 2008 extract.

The extract is seven ';'-separated Latin-1 files under
<data_path>/entd_2008/. Only allow-listed columns are kept (see Schemas)
and every cell is held as a trimmed string; numeric parsing is done on
access and accepts both decimal separators.

# Basic Usage

	infos, err := entd.Validate(dataPath) // fail fast on a missing file
	if err != nil {
	    return err
	}
	extract, err := entd.Load(ctx, dataPath, logger)

	for i := 0; i < extract.VoyageDet.Len(); i++ {
	    km, ok := extract.VoyageDet.Float(i, "V2_OLDKM")
	    ...
	}

# Caching

Decoding the extract takes a few seconds. LoadCached stores the decoded
tables as gob next to the outputs and reuses them while the file sizes
returned by Validate are unchanged.
*/
package entd
