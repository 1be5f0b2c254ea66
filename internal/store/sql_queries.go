package store

const (
	createDevice = `
		INSERT INTO devices (group_id, device_id, token_hash, sync_locations, assigned_form_response_ids)
		VALUES ($1, $2, $3, $4, $5);`

	getDevice = `
		SELECT group_id, device_id, token_hash, sync_locations, assigned_form_response_ids, claimed,
			COALESCE(to_char(last_synced_at AT TIME ZONE 'UTC', 'YYYY-MM-DD"T"HH24:MI:SS"Z"'), '')
		FROM devices
		WHERE group_id = $1 AND device_id = $2;`

	updateDeviceAssignment = `
		UPDATE devices
		SET sync_locations = $3, assigned_form_response_ids = $4
		WHERE group_id = $1 AND device_id = $2;`

	markDeviceClaimed = `
		UPDATE devices
		SET claimed = TRUE
		WHERE group_id = $1 AND device_id = $2;`

	markDeviceSynced = `
		UPDATE devices
		SET last_synced_at = $3
		WHERE group_id = $1 AND device_id = $2;`

	// lockGroupWrites holds a transaction-scoped lock on one group's
	// documents. Sequences of a group are then committed in the order they
	// were drawn.
	lockGroupWrites = `SELECT pg_advisory_xact_lock(hashtextextended($1, 0));`

	saveSyncReport = `
		INSERT INTO sync_reports (group_id, device_id, report)
		VALUES ($1, $2, $3);`
)
