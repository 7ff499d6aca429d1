package sqlinline

const QInsertProject = `--sql 1d418ae2-46be-4a31-85e6-502ec3c53ffb
insert into projects (title, description, start_date, end_date, status, created_by)
values ($1::text, $2::text, $3::date, $4::date, $5::text, $6::bigint)
returning id;
`

const QSelectProjectByID = `--sql 4ac57c3e-754b-45fa-af2b-f27d550b6f39
select id, title, description, start_date, end_date, status, created_by
from projects
where id = $1::bigint
  and (not $2::bool or $3::bool or created_by = $4::bigint)
limit 1;
`

const QListProjects = `--sql 04722e22-1020-4514-807c-9365b68ce781
select id, title, description, start_date, end_date, status, created_by
from projects
where (not $1::bool or $2::bool or created_by = $3::bigint)
  and ($4::text = '' or status = $4::text)
  and ($5::text = '' or title ilike '%' || $5::text || '%' or description ilike '%' || $5::text || '%')
order by id;
`

const QUpdateProject = `--sql af7974b1-d9c6-4c5e-9948-22c3696e2c97
update projects
set title = $2::text,
    description = $3::text,
    start_date = $4::date,
    end_date = $5::date,
    status = $6::text
where id = $1::bigint;
`

const QDeleteProject = `--sql f7a8b2b7-5792-4d17-a224-005fefde3081
delete from projects where id = $1::bigint;
`
