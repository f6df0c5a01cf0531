/*
	Project: tutoring center back office - teacher schedules, classes & attendance
*/
package webapps

/*
TODO: replace the global schedule lock with per-teacher locks once writes stop touching whole tables.
TODO: admin: `audit -fix` to move the later session of a clash to the substitute pool.

FE: existing spreadsheet-backed pages
	- Schedule
		* weekly calendar per teacher (GET /v1/sessions?teacherId=...)
		* recurring generator form
	- Classes
		* reassign teacher (checked against the new teacher's timeline)
	- Attendance sheet per session
*/
