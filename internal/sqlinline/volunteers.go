package sqlinline

const QInsertVolunteer = `--sql d5346f9e-38b9-4dad-995f-f97c9114a2aa
insert into volunteers (user_id, project_id, role, status, date_joined)
values ($1::bigint, $2::bigint, $3::text, $4::text, $5::timestamptz)
returning id;
`

const QSelectVolunteerByID = `--sql cc9e5bd7-499f-4731-890b-af1fa4ea0778
select id, user_id, project_id, role, status, date_joined
from volunteers
where id = $1::bigint
  and (not $2::bool or ($3::bool and status = 'approved') or user_id = $4::bigint)
limit 1;
`

const QListVolunteers = `--sql 9fb84a00-9514-4df1-9308-7130d44b3439
select id, user_id, project_id, role, status, date_joined
from volunteers
where (not $1::bool or ($2::bool and status = 'approved') or user_id = $3::bigint)
  and ($4::bigint = 0 or project_id = $4::bigint)
  and ($5::text = '' or status = $5::text)
order by id;
`

const QUpdateVolunteer = `--sql 3879d7cb-546f-4c9f-9b07-a329d10ef294
update volunteers
set project_id = $2::bigint,
    role = $3::text
where id = $1::bigint;
`

const QDeleteVolunteer = `--sql bfb654d8-e0cb-4f8e-8d59-647c5d5a7335
delete from volunteers where id = $1::bigint;
`

const QSetVolunteerStatus = `--sql aabb51b3-3338-49b3-a912-8d6c4e79b834
update volunteers set status = $2::text where id = any($1::bigint[]);
`
