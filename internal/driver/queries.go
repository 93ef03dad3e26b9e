package driver

const (
	SaveUniversityQuery = `
		MERGE (u:University {name: $name})
		SET u.location = $location,
			u.website = $website,
			u.updated_at = datetime()
		RETURN u.name AS name
	`

	SaveDepartmentQuery = `
		MERGE (d:Department {prefix: $prefix})
		SET d.name = $name,
			d.code = $code,
			d.description = $description,
			d.updated_at = datetime()
		RETURN d.prefix AS prefix
	`

	SaveCourseQuery = `
		MERGE (c:Course {code: $code})
		SET c.prefix = $prefix,
			c.number = $number,
			c.title = $title,
			c.credits = $credits,
			c.level = $level,
			c.description = $description,
			c.prerequisites_text = $prerequisites_text,
			c.offered_semesters = $offered_semesters,
			c.updated_at = datetime()
		RETURN c.code AS code
	`

	SaveProgramQuery = `
		MERGE (p:Program {name: $name})
		SET p.code = $code,
			p.type = $type,
			p.level = $level,
			p.total_credits = $total_credits,
			p.description = $description,
			p.updated_at = datetime()
		RETURN p.name AS name
	`

	LinkDepartmentCourseQuery = `
		MATCH (c:Course {code: $course_code})
		MATCH (d:Department {prefix: $prefix})
		MERGE (d)-[:OFFERS_COURSE]->(c)
		MERGE (c)-[:BELONGS_TO_DISCIPLINE]->(d)
		RETURN c.code AS code
	`

	LinkPrerequisiteQuery = `
		MATCH (prereq:Course {code: $prereq_code})
		MATCH (course:Course {code: $course_code})
		MERGE (prereq)-[:PREREQUISITE_FOR]->(course)
		RETURN course.code AS code
	`

	LinkDepartmentProgramQuery = `
		MATCH (p:Program {name: $program_name})
		MATCH (d:Department {prefix: $prefix})
		MERGE (d)-[:OFFERS_PROGRAM]->(p)
		MERGE (p)-[:BELONGS_TO_DEPARTMENT]->(d)
		RETURN p.name AS name
	`

	LinkUniversityDepartmentsQuery = `
		MATCH (u:University), (d:Department)
		WHERE NOT (u)-[:HAS_DEPARTMENT]->(d)
		MERGE (u)-[:HAS_DEPARTMENT]->(d)
		RETURN count(*) AS created
	`

	GetCourseWithPrereqsQuery = `
		MATCH (course:Course {code: $code})
		OPTIONAL MATCH (prereq:Course)-[:PREREQUISITE_FOR]->(course)
		RETURN course.code AS code,
			course.title AS title,
			course.credits AS credits,
			course.level AS level,
			course.prefix AS department,
			course.description AS description,
			collect(prereq.code) AS prerequisites
	`

	PrerequisitePathsQuery = `
		MATCH path = (start:Course)-[:PREREQUISITE_FOR*1..10]->(target:Course {code: $code})
		WITH path, length(path) AS depth
		WHERE depth <= $max_depth
		RETURN [node IN nodes(path) | node.code] AS course_path,
			[node IN nodes(path) | node.credits] AS credit_path,
			depth
		ORDER BY depth DESC
	`

	FindAlternativesQuery = `
		MATCH (alt:Course)
		WHERE alt.code <> $code AND alt.level = $level AND alt.credits = $credits
			AND ($prefix IS NULL OR alt.prefix = $prefix)
		OPTIONAL MATCH (prereq:Course)-[:PREREQUISITE_FOR]->(alt)
		RETURN alt.code AS code,
			alt.title AS title,
			alt.credits AS credits,
			alt.level AS level,
			alt.prefix AS department,
			alt.description AS description,
			collect(prereq.code) AS prerequisites
		ORDER BY alt.code
		LIMIT $limit
	`

	CoursesByLevelQuery = `
		MATCH (course:Course)
		WHERE course.level = $level AND ($prefix IS NULL OR course.prefix = $prefix)
		OPTIONAL MATCH (prereq:Course)-[:PREREQUISITE_FOR]->(course)
		RETURN course.code AS code,
			course.title AS title,
			course.credits AS credits,
			course.level AS level,
			course.prefix AS department,
			course.description AS description,
			collect(prereq.code) AS prerequisites
		ORDER BY course.code
		LIMIT $limit
	`
)
