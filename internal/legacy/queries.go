package legacy

const AssetsQuery = `
SELECT
  r.sourceId,
  f.handle AS fieldHandle,
  a.filename,
  v.handle AS volume,
  con.title AS assetTitle
FROM craft_relations r
JOIN craft_fields f ON r.fieldId = f.id
JOIN craft_assets a ON r.targetId = a.id
JOIN craft_elements ae ON a.id = ae.id
JOIN craft_volumes v ON a.volumeId = v.id
JOIN craft_elements se ON r.sourceId = se.id
JOIN craft_content con ON a.id = con.elementId
WHERE f.type LIKE '%Assets%'
  AND ae.dateDeleted IS NULL
  AND se.dateDeleted IS NULL
  AND se.draftId IS NULL
  AND se.revisionId IS NULL
ORDER BY r.sourceId, r.sortOrder`

const InstrumentsQuery = `
SELECT c.id, e.uid, con.title
FROM craft_categories c
JOIN craft_elements e ON c.id = e.id
JOIN craft_content con ON e.id = con.elementId
WHERE c.groupId = 1 AND e.dateDeleted IS NULL
ORDER BY c.id`

var WorkColumns = []string{
	"id", "uid", "title", "craft_slug",
	"duration", "completedQ", "completionDates",
	"abbreviatedInstrumentationQ", "abbreviatedInstrumentation",
	"alternativeInstrumentationQ", "inlineNotes", "programNote",
	"miscellaneousNotes", "soundCloudEmbedLink", "publishedOnCdQ",
	"electronicsQ", "electronicsDescription", "commissionInfo",
	"dedication", "publishedQ", "publisher", "publisherLink",
	"scoreSampleLink", "passwordProtectQ", "passwordOverride",
}

const WorksQuery = `
SELECT
  e.id,
  el.uid,
  con.title,
  els.slug AS craft_slug,
  con.field_duration,
  con.field_completedQ,
  con.field_completionDates,
  con.field_abbreviatedInstrumentationQ,
  con.field_abbreviatedInstrumentation,
  con.field_alternativeInstrumentationQ,
  con.field_inlineNotes,
  con.field_programNote,
  con.field_miscellaneousNotes,
  con.field_soundCloudEmbedLink,
  con.field_publishedOnCdQ,
  con.field_electronicsQ,
  con.field_electronicsDescription,
  con.field_commissionInfo,
  con.field_dedication,
  con.field_publishedQ,
  con.field_publisher,
  con.field_publisherLink,
  con.field_scoreSampleLink,
  con.field_passwordProtectQ,
  con.field_passwordOverride
FROM craft_entries e
JOIN craft_elements el ON e.id = el.id
JOIN craft_elements_sites els ON e.id = els.elementId
JOIN craft_content con ON e.id = con.elementId
JOIN craft_sections s ON e.sectionId = s.id
WHERE s.handle = 'works' AND el.dateDeleted IS NULL
  AND el.draftId IS NULL AND el.revisionId IS NULL
ORDER BY e.id`

const InstrumentationQuery = `
SELECT st.ownerId, cat_el.uid AS instrument_uid, st.sortOrder
FROM craft_supertableblocks st
JOIN craft_relations r ON st.id = r.sourceId
JOIN craft_elements cat_el ON r.targetId = cat_el.id
WHERE st.fieldId = 25 AND r.fieldId = 26
ORDER BY st.ownerId, st.sortOrder`

const AltInstrumentationQuery = `
SELECT st.ownerId, cat_el.uid AS instrument_uid, st.sortOrder
FROM craft_supertableblocks st
JOIN craft_relations r ON st.id = r.sourceId
JOIN craft_elements cat_el ON r.targetId = cat_el.id
WHERE st.fieldId = 40 AND r.fieldId = 41
ORDER BY st.ownerId, st.sortOrder`

const HierarchyQuery = `
SELECT
  child_el.id AS child_id,
  parent_el.uid AS parent_uid
FROM craft_structureelements child_se
JOIN craft_elements child_el ON child_se.elementId = child_el.id
JOIN craft_structureelements parent_se ON child_se.structureId = parent_se.structureId
  AND child_se.lft > parent_se.lft
  AND child_se.rgt < parent_se.rgt
  AND parent_se.level = child_se.level - 1
JOIN craft_elements parent_el ON parent_se.elementId = parent_el.id
WHERE child_el.dateDeleted IS NULL AND parent_el.dateDeleted IS NULL`

var RecordingColumns = []string{
	"id", "uid", "title", "craft_slug",
	"recordLabel", "catalogNumber", "releaseDate",
	"albumLink", "purchaseLink", "featuredQ",
}

const RecordingsQuery = `
SELECT
  e.id,
  el.uid,
  con.title,
  els.slug AS craft_slug,
  con.field_recordLabel,
  con.field_catalogNumber,
  con.field_releaseDate,
  con.field_albumLink,
  con.field_purchaseLink,
  con.field_featuredQ
FROM craft_entries e
JOIN craft_elements el ON e.id = el.id
JOIN craft_elements_sites els ON e.id = els.elementId
JOIN craft_content con ON e.id = con.elementId
JOIN craft_sections s ON e.sectionId = s.id
WHERE s.handle = 'cds' AND el.dateDeleted IS NULL
  AND el.draftId IS NULL AND el.revisionId IS NULL
ORDER BY e.id`

const PiecesQuery = `
SELECT
  mb.ownerId AS recordingId,
  work_el.uid AS work_uid,
  con.field_performers
FROM craft_matrixblocks mb
JOIN craft_content con ON mb.id = con.elementId
LEFT JOIN craft_relations r ON mb.id = r.sourceId
LEFT JOIN craft_elements work_el ON r.targetId = work_el.id
JOIN craft_elements mbe ON mb.id = mbe.id
WHERE mb.fieldId = (SELECT id FROM craft_fields WHERE handle = 'pieces')
  AND mbe.dateDeleted IS NULL
ORDER BY mb.ownerId, mb.sortOrder`

var ReviewColumns = []string{
	"id", "uid", "title", "craft_slug",
	"body", "excerpt", "reviewDate", "reviewSource",
	"reviewAuthor", "reviewLink",
}

const ReviewsQuery = `
SELECT
  e.id,
  el.uid,
  con.title,
  els.slug AS craft_slug,
  con.field_body,
  con.field_excerpt,
  con.field_reviewDate,
  con.field_reviewSource,
  con.field_reviewAuthor,
  con.field_reviewLink
FROM craft_entries e
JOIN craft_elements el ON e.id = el.id
JOIN craft_elements_sites els ON e.id = els.elementId
JOIN craft_content con ON e.id = con.elementId
JOIN craft_sections s ON e.sectionId = s.id
WHERE s.handle = 'newsReviews' AND el.dateDeleted IS NULL
  AND el.draftId IS NULL AND el.revisionId IS NULL
ORDER BY e.id`

const RelatedWorksQuery = `
SELECT r.sourceId, work_el.uid AS work_uid
FROM craft_relations r
JOIN craft_elements work_el ON r.targetId = work_el.id
JOIN craft_fields f ON r.fieldId = f.id
JOIN craft_entries e ON work_el.id = e.id
JOIN craft_sections s ON e.sectionId = s.id
WHERE f.handle = 'relatedWorks' AND s.handle = 'works'
ORDER BY r.sourceId, r.sortOrder`

const RelatedRecordingsQuery = `
SELECT r.sourceId, rec_el.uid AS rec_uid
FROM craft_relations r
JOIN craft_elements rec_el ON r.targetId = rec_el.id
JOIN craft_fields f ON r.fieldId = f.id
JOIN craft_entries e ON rec_el.id = e.id
JOIN craft_sections s ON e.sectionId = s.id
WHERE f.handle = 'relatedRecordings' AND s.handle = 'cds'
ORDER BY r.sourceId, r.sortOrder`

var PerformanceColumns = []string{
	"id", "uid", "programID", "programTitle", "programComposer",
	"programContext", "programEnsemblePerformer", "programInstrumentation",
	"programPersonnel", "programWork", "programDate",
}

const PerformancesQuery = `
SELECT
  e.id,
  el.uid,
  con.field_programID,
  con.field_programTitle,
  con.field_programComposer,
  con.field_programContext,
  con.field_programEnsemblePerformer,
  con.field_programInstrumentation,
  con.field_programPersonnel,
  con.field_programWork,
  con.field_programDate
FROM craft_entries e
JOIN craft_elements el ON e.id = el.id
JOIN craft_content con ON e.id = con.elementId
JOIN craft_sections s ON e.sectionId = s.id
WHERE s.handle = 'programming' AND el.dateDeleted IS NULL
  AND el.draftId IS NULL AND el.revisionId IS NULL
ORDER BY e.id`

var AboutColumns = []string{"id", "uid", "title", "body", "vitalInfo", "otherlinks", "streamEmbed"}

const AboutQuery = `
SELECT
  e.id,
  el.uid,
  con.title,
  con.field_body,
  con.field_vitalInfo,
  con.field_otherlinks,
  con.field_streamEmbed
FROM craft_entries e
JOIN craft_elements el ON e.id = el.id
JOIN craft_content con ON e.id = con.elementId
JOIN craft_sections s ON e.sectionId = s.id
WHERE s.handle = 'about' AND el.dateDeleted IS NULL
  AND el.draftId IS NULL AND el.revisionId IS NULL
LIMIT 1`

var ContactColumns = []string{"id", "uid", "title", "body"}

const ContactQuery = `
SELECT
  e.id,
  el.uid,
  con.title,
  con.field_body
FROM craft_entries e
JOIN craft_elements el ON e.id = el.id
JOIN craft_content con ON e.id = con.elementId
JOIN craft_sections s ON e.sectionId = s.id
WHERE s.handle = 'contact' AND el.dateDeleted IS NULL
  AND el.draftId IS NULL AND el.revisionId IS NULL
LIMIT 1`
