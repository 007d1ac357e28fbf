package repository

const upsertUserCypher = `
MERGE (u:User {userId: $userId})
SET u += $props
RETURN u.userId AS userId
`

const upsertContactCypher = `
MATCH (owner:User {userId: $ownerId})
MERGE (c:Contact {contactId: $contactId})
SET c += $props
MERGE (owner)-[:OWNS]->(c)
RETURN c.contactId AS contactId
`

const upsertUserRelationshipCypher = `
MATCH (u:User {userId: $sourceId})-[:OWNS]->(c:Contact {contactId: $targetId})
MERGE (u)-[r:KNOWS]->(c)
SET r.strength = $strength, r.type = $type
RETURN c.contactId AS contactId
`

const upsertContactRelationshipCypher = `
MATCH (a:Contact {contactId: $sourceId})
MATCH (b:Contact {contactId: $targetId})
MERGE (a)-[r:KNOWS]->(b)
SET r.strength = $strength, r.type = $type
RETURN b.contactId AS contactId
`

const upsertTeamCypher = `
MERGE (t:Team {teamId: $teamId})
SET t.name = $name
RETURN t.teamId AS teamId
`

const addTeamMemberCypher = `
MATCH (u:User {userId: $userId})
MATCH (t:Team {teamId: $teamId})
MERGE (u)-[:MEMBER_OF]->(t)
RETURN t.teamId AS teamId
`

const shareContactCypher = `
MATCH (u:User {userId: $sharedBy})-[:OWNS]->(c:Contact {contactId: $contactId})
MATCH (u)-[:MEMBER_OF]->(t:Team {teamId: $teamId})
MERGE (c)-[s:SHARED_WITH]->(t)
SET s.sharedBy = $sharedBy, s.visibility = $visibility
RETURN c.contactId AS contactId
`

const listContactsCypher = `
MATCH (:User {userId: $userId})-[:OWNS]->(c:Contact)
RETURN c.contactId AS contactId, c.name AS name, c.company AS company, c.title AS title
ORDER BY name, contactId
`

const listRelationshipsCypher = `
CALL {
	MATCH (u:User {userId: $userId})-[r:KNOWS]->(c:Contact)
	RETURN u.userId AS sourceId, c.contactId AS targetId, true AS isUserRelationship,
		r.strength AS strength, r.type AS type, 0 AS bucket
	UNION ALL
	MATCH (u:User {userId: $userId})-[:OWNS]->(a:Contact)-[r:KNOWS]->(b:Contact)<-[:OWNS]-(u)
	RETURN a.contactId AS sourceId, b.contactId AS targetId, false AS isUserRelationship,
		r.strength AS strength, r.type AS type, 1 AS bucket
}
RETURN sourceId, targetId, isUserRelationship, strength, type
ORDER BY bucket, sourceId, targetId
`

const listTeamsCypher = `
MATCH (:User {userId: $userId})-[:MEMBER_OF]->(t:Team)
RETURN t.teamId AS teamId, t.name AS name
ORDER BY name, teamId
`

const listTeamMembersCypher = `
MATCH (m:User)-[:MEMBER_OF]->(:Team {teamId: $teamId})
WHERE m.userId <> $excludeUserId
RETURN m.userId AS userId, m.name AS name
ORDER BY name, userId
`

const listSharedContactsCypher = `
MATCH (:User {userId: $userId})-[:OWNS]->(c:Contact)-[s:SHARED_WITH]->(:Team {teamId: $teamId})
RETURN c.contactId AS contactId, c.name AS name, c.company AS company, c.title AS title,
	s.visibility AS visibility
ORDER BY name, contactId
`

const findContactCypher = `
MATCH (:User {userId: $userId})-[:OWNS]->(c:Contact)
WHERE toLower(coalesce(c.name, '')) CONTAINS $query
	OR toLower(coalesce(c.company, '')) CONTAINS $query
	OR toLower(coalesce(c.title, '')) CONTAINS $query
RETURN c.contactId AS contactId, c.name AS name, c.company AS company, c.title AS title
ORDER BY name, contactId
LIMIT 1
`

const findTeamContactCypher = `
MATCH (:User {userId: $userId})-[:MEMBER_OF]->(t:Team)<-[s:SHARED_WITH]-(c:Contact)<-[:OWNS]-(m:User)
WHERE m.userId <> $userId
	AND coalesce(s.visibility, 'team') <> 'private'
	AND (toLower(coalesce(c.name, '')) CONTAINS $query
		OR toLower(coalesce(c.company, '')) CONTAINS $query
		OR toLower(coalesce(c.title, '')) CONTAINS $query)
RETURN c.contactId AS contactId, c.name AS name, c.company AS company, c.title AS title,
	t.teamId AS teamId, t.name AS teamName, m.userId AS sharedById, m.name AS sharedByName
ORDER BY teamName, teamId, name, contactId
LIMIT 1
`
