package ingest

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "mapping_framework,mapping_framework_version,capability_group,capability_id,capability_description,mapping_type,attack_object_id,attack_object_name,attack_version,technology_domain,references,comments,organization,creation_date,last_update\n"

func TestReadMappingsCSV(t *testing.T) {
	data := header +
		"veris,1.3.7,action.hacking,action.hacking.variety.Brute force,Brute force,related-to,T1110,Brute Force,12.1,enterprise,,,,21/09/2022,21/09/2022\n" +
		"veris,1.3.7,action.malware,action.malware.variety.Ransomware,Ransomware,related-to,T1486,\"Data Encrypted for Impact\",12.1,enterprise,,\"a, b\",,01/10/2022,01/10/2022\n"

	records, err := ReadMappingsCSV(strings.NewReader(data))
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, "action.hacking.variety.Brute force", records[0].CapabilityID)
	assert.Equal(t, "T1110", records[0].AttackObjectID)
	assert.Equal(t, "related-to", records[0].MappingType)
	assert.Equal(t, "21/09/2022", records[0].CreationDate)
	assert.Equal(t, "Data Encrypted for Impact", records[1].AttackObjectName)
	assert.Equal(t, "a, b", records[1].Comments)
}

func TestReadMappingsCSV_ColumnOrderAndBOM(t *testing.T) {
	data := "\ufeffcreation_date,attack_object_id,capability_id,mapping_type,technology_domain\n" +
		"05/03/2023, T1059 ,V1,Strong,enterprise\n"

	records, err := ReadMappingsCSV(strings.NewReader(data))
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "T1059", records[0].AttackObjectID)
	assert.Equal(t, "05/03/2023", records[0].CreationDate)
	assert.Empty(t, records[0].Organization)
}

func TestReadMappingsCSV_Errors(t *testing.T) {
	_, err := ReadMappingsCSV(strings.NewReader(""))
	var ie *Error
	require.True(t, errors.As(err, &ie))
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = ReadMappingsCSV(strings.NewReader("capability_id,attack_object_id\nV1,T1\n"))
	assert.ErrorIs(t, err, ErrMissingColumn)

	_, err = ReadMappingsCSV(strings.NewReader(header + "\"unterminated\n"))
	assert.Error(t, err)
}

func TestReadMappingsCSV_HeaderOnly(t *testing.T) {
	records, err := ReadMappingsCSV(strings.NewReader(header))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestLoadMappings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mappings.csv")
	require.NoError(t, os.WriteFile(path, []byte(header+"veris,1.3.7,g,V1,d,Strong,T1,n,12,enterprise,,,,01/01/2024,01/01/2024\n"), 0o644))

	records, err := LoadMappings(path)
	require.NoError(t, err)
	assert.Len(t, records, 1)

	_, err = LoadMappings(filepath.Join(dir, "missing.csv"))
	var ie *Error
	require.True(t, errors.As(err, &ie))
	assert.Contains(t, ie.Source, "missing.csv")
}

func TestReadBundle_Flat(t *testing.T) {
	data := `{
		"objects": [
			{"id": "attack-pattern--1", "name": "Phishing", "object_type": "attack-pattern"},
			{"id": "malware--1", "name": "Emotet", "object_type": "malware"}
		],
		"relationships": [
			{"source_ref": "malware--1", "target_ref": "attack-pattern--1", "relationship_type": "uses"}
		]
	}`

	b, err := ReadBundle(strings.NewReader(data))
	require.NoError(t, err)

	assert.Len(t, b.Objects, 2)
	assert.Equal(t, "malware", b.Objects[1].ObjectType)
	require.Len(t, b.Relationships, 1)
	assert.Equal(t, "uses", b.Relationships[0].RelationshipType)
}

func TestReadBundle_STIX(t *testing.T) {
	data := `{
		"type": "bundle",
		"id": "bundle--1",
		"objects": [
			{"type": "attack-pattern", "id": "attack-pattern--1", "name": "Phishing"},
			{"type": "course-of-action", "id": "course-of-action--1", "name": "User Training"},
			{"type": "relationship", "id": "relationship--1", "source_ref": "course-of-action--1", "target_ref": "attack-pattern--1", "relationship_type": "mitigates"}
		]
	}`

	b, err := ReadBundle(strings.NewReader(data))
	require.NoError(t, err)

	require.Len(t, b.Objects, 2)
	assert.Equal(t, "course-of-action", b.Objects[1].ObjectType)
	require.Len(t, b.Relationships, 1)
	assert.Equal(t, "course-of-action--1", b.Relationships[0].SourceRef)
	assert.Equal(t, "mitigates", b.Relationships[0].RelationshipType)
}

func TestReadBundle_Invalid(t *testing.T) {
	_, err := ReadBundle(strings.NewReader("{not json"))
	var ie *Error
	assert.True(t, errors.As(err, &ie))
}
